package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	appErr "skharness/pkg/errors"
	"skharness/pkg/utils/logger"

	"go.uber.org/zap"
)

// Manager owns the lifecycle of one scratch root.
type Manager struct {
	layout Layout
}

// NewManager computes the scratch root once. An empty root uses the host's
// temp directory; an empty name uses DefaultName.
func NewManager(root, name string) (*Manager, error) {
	if root == "" {
		root = os.TempDir()
	}
	if name == "" {
		name = DefaultName
	}
	if filepath.Base(name) != name {
		return nil, appErr.ValidationError("workspace.name", "must be a single path element")
	}
	abs, err := filepath.Abs(filepath.Join(root, name))
	if err != nil {
		return nil, appErr.Wrapf(err, appErr.WorkspaceSetupFailed, "resolve scratch root failed")
	}
	return &Manager{layout: Layout{RootDir: abs}}, nil
}

// Layout returns the artifact paths of this workspace.
func (m *Manager) Layout() Layout {
	return m.layout
}

// Setup creates the scratch root. Pre-existence is not an error.
func (m *Manager) Setup(ctx context.Context) error {
	if err := os.MkdirAll(m.layout.RootDir, 0755); err != nil {
		return appErr.Wrapf(err, appErr.WorkspaceSetupFailed, "create scratch root failed: %v", err).
			WithDetail("path", m.layout.RootDir)
	}
	logger.Debug(ctx, "scratch root ready", zap.String("path", m.layout.RootDir))
	return nil
}

// Teardown removes the scratch root if it is empty. Failure is logged as a
// warning and returned; it must never abort a run.
func (m *Manager) Teardown(ctx context.Context) error {
	err := os.Remove(m.layout.RootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		wrapped := appErr.Wrapf(err, appErr.WorkspaceTeardownFailed, "remove scratch root: %v", err).
			WithDetail("path", m.layout.RootDir)
		logger.Warn(ctx, "scratch root not removed", zap.String("path", m.layout.RootDir), zap.Error(err))
		return wrapped
	}
	logger.Debug(ctx, "scratch root removed", zap.String("path", m.layout.RootDir))
	return nil
}
