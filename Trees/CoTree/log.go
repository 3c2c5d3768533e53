package CoTree

import (
	"github.com/sirupsen/logrus"
)

// Log receives the structural events of all trees (growth, shrink, local
// rebalances) at debug level. It logs at info level by default, so nothing
// is emitted.
var Log = logrus.New()

func debugEnabled() bool {
	return Log.IsLevelEnabled(logrus.DebugLevel)
}
