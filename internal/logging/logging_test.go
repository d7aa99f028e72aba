package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNew_File(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "logs", "halil.log")

	log, closer, err := New(path, "debug")
	is.NoErr(err)
	storeLog := Component(log, "store")
	storeLog.Debug().Str("todo_id", "42").Msg("added todo")
	is.NoErr(closer.Close())

	bs, err := os.ReadFile(path)
	is.NoErr(err)
	out := string(bs)
	is.True(strings.Contains(out, `"component":"store"`))
	is.True(strings.Contains(out, `"todo_id":"42"`))
	is.True(strings.Contains(out, `"timestamp"`))
}

func TestNew_Level(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "halil.log")

	log, closer, err := New(path, "warn")
	is.NoErr(err)
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	is.NoErr(closer.Close())

	bs, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(!strings.Contains(string(bs), "quiet"))
	is.True(strings.Contains(string(bs), "loud"))
}

func TestNew_Disabled(t *testing.T) {
	is := is.New(t)
	_, closer, err := New("", "info")
	is.NoErr(err)
	is.NoErr(closer.Close())
}
