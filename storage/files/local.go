package files

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/starville/academy/core"
)

// LocalStore keeps uploads on the local disk. It is the default backend in
// development; the files are served by the API under /media/.
type LocalStore struct {
	root          string
	publicBaseURL string
}

var _ core.FileStore = (*LocalStore)(nil) // interface compliance check

func NewLocalStore(conf *core.Config) *LocalStore {
	baseURL := strings.TrimSuffix(conf.Storage.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "/media"
	}
	return &LocalStore{
		root:          filepath.Join(conf.WorkDir, conf.Storage.LocalDir),
		publicBaseURL: baseURL,
	}
}

// Root returns the directory uploads are stored under.
func (st *LocalStore) Root() string { return st.root }

func (st *LocalStore) Save(ctx context.Context, key, contentType string, body io.Reader) (core.StoredFile, error) {
	path := filepath.Join(st.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return core.StoredFile{}, errors.Wrapf(err, "creating upload dir for %s", key)
	}

	f, err := os.Create(path)
	if err != nil {
		return core.StoredFile{}, errors.Wrapf(err, "creating upload file %s", key)
	}
	defer func() { _ = f.Close() }()

	if _, err = io.Copy(f, body); err != nil {
		return core.StoredFile{}, errors.Wrapf(err, "writing upload file %s", key)
	}
	return core.StoredFile{Key: key, URL: st.publicBaseURL + "/" + key}, nil
}

func (st *LocalStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(st.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "deleting upload file %s", key)
	}
	return nil
}
