package folrules

import "go.uber.org/zap"

// searchLogger is the optional debug hook the meta-rule's bounded forward
// search reports its progress through: one line per round with the size
// of the frontier it produced, and one naming the rule that reached the
// goal. Default is a
// no-op logger, the same pattern gnoverse-tlin's cmd package uses to thread
// a *zap.Logger through commands that are silent unless configured
// otherwise.
var searchLogger = zap.NewNop()

// SetLogger installs l as the package-wide search logger. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	searchLogger = l
}
