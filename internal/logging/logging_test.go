package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNew(t *testing.T) {
	is := is.New(t)
	file := filepath.Join(t.TempDir(), "board.log")

	logger, closer, err := New("warn", file)
	is.NoErr(err)
	logger.Info("hidden")
	logger.Warn("shown", "id", "t1")
	is.NoErr(closer.Close())

	bs, err := os.ReadFile(file)
	is.NoErr(err)
	is.True(!strings.Contains(string(bs), "hidden"))
	is.True(strings.Contains(string(bs), "msg=shown id=t1"))
}

func TestNew_Invalid(t *testing.T) {
	is := is.New(t)
	_, _, err := New("loud", "")
	is.True(err != nil)

	logger, closer, err := New("debug", "")
	is.NoErr(err)
	logger.Debug("nowhere")
	is.NoErr(closer.Close())
}
