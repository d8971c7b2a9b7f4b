package hugo

import (
	"log/slog"

	ggit "github.com/go-git/go-git/v5"

	"github.com/sch1zk/docsexport/internal/config"
	"github.com/sch1zk/docsexport/internal/logfields"
)

// ResolveGitInfo decides Hugo's enableGitInfo. In auto mode it is enabled only
// when contentDir sits inside a git work tree, since Hugo fails otherwise.
func ResolveGitInfo(mode config.GitInfoMode, contentDir string) bool {
	switch mode {
	case config.GitInfoOn:
		return true
	case config.GitInfoOff:
		return false
	}
	_, err := ggit.PlainOpenWithOptions(contentDir, &ggit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		slog.Debug("Git info disabled: content is not in a git repository", logfields.Path(contentDir))
		return false
	}
	return true
}
