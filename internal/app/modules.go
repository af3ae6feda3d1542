package app

import (
	"github.com/vk/stageforge/internal/producers"
	"github.com/vk/stageforge/modules/approval"
	"github.com/vk/stageforge/modules/shell"
)

// coreModules is the definitive list of all runner modules that are compiled
// into the stageforge binary.
var coreModules = []producers.Module{
	&shell.Module{},
	&approval.Module{},
}
