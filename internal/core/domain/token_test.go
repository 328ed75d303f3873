package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cmk/internal/core/domain"
)

func TestToken_Render(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name  string
		token domain.Token
		want  string
	}{
		{
			name:  "literal is verbatim",
			token: domain.Literal("-G"),
			want:  "-G",
		},
		{
			name:  "dir is cleaned",
			token: domain.Dir(filepath.Join(root, "src", "..", "build")),
			want:  filepath.Join(root, "build"),
		},
		{
			name:  "file is absolute",
			token: domain.File(filepath.Join(root, "cache.cmake")),
			want:  filepath.Join(root, "cache.cmake"),
		},
		{
			name:  "line is never escaped",
			token: domain.Line(`-DA="x y"  -DB=1`),
			want:  `-DA="x y"  -DB=1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.token.Render())
		})
	}
}

func TestToken_RenderRelativeDirIsAbsolute(t *testing.T) {
	got := domain.Dir("build").Render()
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %q", got)
}

func TestArguments_String(t *testing.T) {
	args := domain.NewArguments(domain.Literal("--build"), domain.Dir("/tmp/out"))
	args.Append(domain.Literal("--clean-first"))

	assert.Equal(t, 3, args.Len())
	assert.Equal(t, "--build /tmp/out --clean-first", args.String())
}

func TestArguments_Empty(t *testing.T) {
	var args domain.Arguments
	assert.Empty(t, args.String())
	assert.Empty(t, args.Tokens())
}

func TestArguments_TokensIsCopy(t *testing.T) {
	args := domain.NewArguments(domain.Literal("a"))
	tokens := args.Tokens()
	tokens[0] = domain.Literal("b")

	assert.Equal(t, "a", args.String())
}

func TestTokenKind_String(t *testing.T) {
	assert.Equal(t, "literal", domain.TokenLiteral.String())
	assert.Equal(t, "dir", domain.TokenDir.String())
	assert.Equal(t, "file", domain.TokenFile.String())
	assert.Equal(t, "line", domain.TokenLine.String())
	assert.Equal(t, "unknown", domain.TokenKind(42).String())
}
