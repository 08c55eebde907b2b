package commands

import (
	"os"

	"mediavault/pkg/logger"
)

func ExitOnError(err error) {
	logger.Error("mediavault error", "err", err.Error())
	os.Exit(1)
}
