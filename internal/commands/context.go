package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grantbooks-dev/grantbooks/internal/accounts"
	"github.com/grantbooks-dev/grantbooks/internal/auditlog"
	"github.com/grantbooks-dev/grantbooks/internal/config"
	"github.com/grantbooks-dev/grantbooks/internal/gitops"
)

// configFile is the name of the books configuration file.
const configFile = "grantbooks.yaml"

// booksContext bundles what most commands need: the config and the chart,
// loaded from one books directory.
type booksContext struct {
	Root     string
	Config   *config.Config
	Accounts *accounts.Service
}

// loadBooks resolves a books directory and loads its config and chart.
func loadBooks(dir string) (*booksContext, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return nil, fmt.Errorf("loading config (is %s a grantbooks directory?): %w", root, err)
	}

	accts, err := accounts.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	return &booksContext{Root: root, Config: cfg, Accounts: accts}, nil
}

// recordAction appends an audit entry and auto-commits when configured.
// Both are best-effort: a failed log or commit warns but does not undo
// the action it records.
func (b *booksContext) recordAction(actor, action, details, ref string) {
	hash := ""
	if b.Config.Git.AutoCommit && gitops.IsRepo(b.Root) {
		var err error
		hash, err = gitops.CommitAll(b.Root, action+": "+details, b.Config.Git.AuthorName, b.Config.Git.AuthorEmail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
		}
	}

	err := auditlog.Append(b.Root, []auditlog.Entry{{
		Timestamp:  time.Now().UTC(),
		Actor:      actor,
		Action:     action,
		Details:    details,
		Ref:        ref,
		CommitHash: hash,
	}})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}
