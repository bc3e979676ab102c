package microscope

import "github.com/pkg/errors"

var MissingChamber = errors.New("microscope: configuration has no chamber")
var MissingStage = errors.New("microscope: configuration has no stage")
