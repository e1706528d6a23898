package build_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"skharness/internal/harness/build"
	"skharness/internal/harness/result"
	"skharness/internal/harness/spec"
	appErr "skharness/pkg/errors"
)

type fakeEngine struct {
	res      result.ExecResult
	err      error
	runSpecs []spec.RunSpec
}

func (f *fakeEngine) Run(ctx context.Context, runSpec spec.RunSpec) (result.ExecResult, error) {
	f.runSpecs = append(f.runSpecs, runSpec)
	return f.res, f.err
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name    string
		res     result.ExecResult
		err     error
		wantErr bool
	}{
		{name: "ok", res: result.ExecResult{ExitCode: 0}},
		{name: "non-zero", res: result.ExecResult{ExitCode: 101}, wantErr: true},
		{name: "start failure", res: result.ExecResult{ExitCode: -1}, err: errors.New("cargo: not found"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng := &fakeEngine{res: tc.res, err: tc.err}
			v, err := build.NewVerifier(eng, build.DefaultCommand, "/src/touka")
			if err != nil {
				t.Fatalf("new verifier: %v", err)
			}
			err = v.Verify(context.Background())
			if tc.wantErr {
				if !appErr.Is(err, appErr.BuildFailed) {
					t.Fatalf("expected BuildFailed, got %v", err)
				}
				if appErr.ExitCode(err) == 0 {
					t.Fatalf("build failure must map to a non-zero exit")
				}
			} else if err != nil {
				t.Fatalf("verify: %v", err)
			}

			if len(eng.runSpecs) != 1 {
				t.Fatalf("expected exactly one build invocation, got %d", len(eng.runSpecs))
			}
			rs := eng.runSpecs[0]
			if !reflect.DeepEqual(rs.Cmd, []string{"cargo", "build"}) || rs.WorkDir != "/src/touka" || rs.Stage != spec.StageBuild {
				t.Fatalf("unexpected run spec: %+v", rs)
			}
		})
	}
}

func TestNewVerifierInvalidCommand(t *testing.T) {
	if _, err := build.NewVerifier(&fakeEngine{}, "", ""); !appErr.Is(err, appErr.BuildCommandInvalid) {
		t.Fatalf("expected BuildCommandInvalid, got %v", err)
	}
	if _, err := build.NewVerifier(nil, "make", ""); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}
