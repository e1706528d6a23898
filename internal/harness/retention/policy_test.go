package retention_test

import (
	"context"
	"os"
	"reflect"
	"testing"

	"skharness/internal/harness/retention"
	"skharness/internal/harness/workspace"
	appErr "skharness/pkg/errors"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	cases := []struct {
		name string
		cfg  retention.Config
		env  map[string]string
		want bool
	}{
		{name: "absent", env: map[string]string{}, want: false},
		{name: "match", env: map[string]string{"SK_KEEP_C": "1"}, want: true},
		{name: "non matching", env: map[string]string{"SK_KEEP_C": "yes"}, want: false},
		{name: "empty", env: map[string]string{"SK_KEEP_C": ""}, want: false},
		{
			name: "custom toggle",
			cfg:  retention.Config{Env: "KEEP", Value: "on"},
			env:  map[string]string{"KEEP": "on", "SK_KEEP_C": "0"},
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := retention.FromEnv(tc.cfg, lookupFrom(tc.env))
			if p.Enabled() != tc.want {
				t.Fatalf("Enabled() = %v, want %v", p.Enabled(), tc.want)
			}
		})
	}
}

func TestToolchainFlags(t *testing.T) {
	if flags := retention.New(false, []string{"-g"}).ToolchainFlags(); flags != nil {
		t.Fatalf("disabled policy must add no flags, got %v", flags)
	}
	if flags := retention.New(true, nil).ToolchainFlags(); !reflect.DeepEqual(flags, []string{"-g"}) {
		t.Fatalf("unexpected default flags: %v", flags)
	}
	if flags := retention.New(true, []string{"-b", "-g"}).ToolchainFlags(); !reflect.DeepEqual(flags, []string{"-b", "-g"}) {
		t.Fatalf("unexpected flags: %v", flags)
	}
}

func TestApplyDiscard(t *testing.T) {
	layout := workspace.Layout{RootDir: t.TempDir()}
	if err := os.WriteFile(layout.OutputPath(), []byte("int main(void){return 0;}"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	path, err := retention.New(false, nil).Apply(context.Background(), layout, 1)
	if err != nil || path != "" {
		t.Fatalf("unexpected result: %q, %v", path, err)
	}
	if _, err := os.Stat(layout.OutputPath()); !os.IsNotExist(err) {
		t.Fatalf("output artifact not deleted")
	}
}

func TestApplyRetainIsIdempotent(t *testing.T) {
	layout := workspace.Layout{RootDir: t.TempDir()}
	p := retention.New(true, nil)

	for run, body := range []string{"first", "second"} {
		if err := os.WriteFile(layout.OutputPath(), []byte(body), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		path, err := p.Apply(context.Background(), layout, 1)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		data, err := os.ReadFile(path)
		if err != nil || string(data) != body {
			t.Fatalf("run %d: retained %q, %v", run, data, err)
		}
	}
	if _, err := os.Stat(layout.OutputPath()); !os.IsNotExist(err) {
		t.Fatalf("fixed output location should be empty after retain")
	}
}

func TestApplyRetainMissingOutput(t *testing.T) {
	layout := workspace.Layout{RootDir: t.TempDir()}
	if _, err := retention.New(true, nil).Apply(context.Background(), layout, 3); err == nil {
		t.Fatalf("expected error when nothing to retain")
	}
}

func TestApplyRetainMissingOutputKeepsPreviousArtifact(t *testing.T) {
	layout := workspace.Layout{RootDir: t.TempDir()}
	previous := []byte("int main(void){return 4;}")
	if err := os.WriteFile(layout.RetainedPath(3), previous, 0644); err != nil {
		t.Fatalf("seed retained: %v", err)
	}

	_, err := retention.New(true, nil).Apply(context.Background(), layout, 3)
	if !appErr.Is(err, appErr.ArtifactRetainFailed) {
		t.Fatalf("expected ArtifactRetainFailed, got %v", err)
	}
	got, err := os.ReadFile(layout.RetainedPath(3))
	if err != nil {
		t.Fatalf("previous artifact lost: %v", err)
	}
	if string(got) != string(previous) {
		t.Fatalf("previous artifact changed: %q", got)
	}
}
