package instance

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobaltcore/renutil/internal/core/config"
	"github.com/kobaltcore/renutil/internal/core/release"
	"github.com/kobaltcore/renutil/internal/core/version"
)

// zipBytes builds an in-memory zip archive.
func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, body := range entries {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// newSDKServer serves SDK and RAPT archives for one version the way the
// download index lays them out.
func newSDKServer(t *testing.T, v string) *httptest.Server {
	t.Helper()

	sdk := zipBytes(t, map[string]string{
		fmt.Sprintf("renpy-%s-sdk/renpy.py", v):        "# entry",
		fmt.Sprintf("renpy-%s-sdk/launcher/game", v):   "launcher",
		fmt.Sprintf("renpy-%s-sdk/lib/linux/renpy", v): "bin",
	})
	rapt := zipBytes(t, map[string]string{
		fmt.Sprintf("renpy-%s-rapt/android.py", v): "# android",
	})

	mux := http.NewServeMux()
	mux.HandleFunc(fmt.Sprintf("/dl/%s/renpy-%s-sdk.zip", v, v), func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "sdk.zip", time.Unix(0, 0), bytes.NewReader(sdk))
	})
	mux.HandleFunc(fmt.Sprintf("/dl/%s/renpy-%s-rapt.zip", v, v), func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "rapt.zip", time.Unix(0, 0), bytes.NewReader(rapt))
	})
	return httptest.NewServer(mux)
}

func newTestManager(t *testing.T, srv *httptest.Server) (*Manager, config.Environment) {
	t.Helper()

	env := config.Environment{
		CacheRoot: t.TempDir(),
		BaseURL:   srv.URL + "/dl/",
	}
	mgr := NewManager(env, WithReleaseClient(release.NewClient(env.BaseURL)))
	return mgr, env
}

func TestInstallUninstallLifecycle(t *testing.T) {
	srv := newSDKServer(t, "1.2.3")
	defer srv.Close()

	mgr, env := newTestManager(t, srv)
	ctx := context.Background()
	v := version.MustParse("1.2.3")

	installed, err := mgr.IsInstalled(ctx, v)
	require.NoError(t, err)
	assert.False(t, installed)

	require.NoError(t, mgr.Install(ctx, v))

	installed, err = mgr.IsInstalled(ctx, v)
	require.NoError(t, err)
	assert.True(t, installed)

	// Archive wrapper folders are stripped into the instance layout.
	assert.FileExists(t, filepath.Join(env.CacheRoot, "1.2.3", "renpy.py"))
	assert.FileExists(t, filepath.Join(env.CacheRoot, "1.2.3", "launcher", "game"))
	assert.FileExists(t, filepath.Join(env.CacheRoot, "1.2.3", "rapt", "android.py"))

	// Downloaded archives are cleaned up.
	assert.NoFileExists(t, filepath.Join(env.CacheRoot, "renpy-1.2.3-sdk.zip"))
	assert.NoFileExists(t, filepath.Join(env.CacheRoot, "renpy-1.2.3-rapt.zip"))

	require.NoError(t, mgr.Uninstall(ctx, v))

	installed, err = mgr.IsInstalled(ctx, v)
	require.NoError(t, err)
	assert.False(t, installed)
	assert.NoDirExists(t, filepath.Join(env.CacheRoot, "1.2.3"))
}

func TestInstall_AlreadyInstalled(t *testing.T) {
	srv := newSDKServer(t, "1.2.3")
	defer srv.Close()

	mgr, env := newTestManager(t, srv)
	ctx := context.Background()
	v := version.MustParse("1.2.3")

	require.NoError(t, mgr.Install(ctx, v))

	// Snapshot registry and instance folder state.
	regBefore, err := os.ReadFile(env.RegistryPath())
	require.NoError(t, err)
	entriesBefore, err := os.ReadDir(filepath.Join(env.CacheRoot, "1.2.3"))
	require.NoError(t, err)

	err = mgr.Install(ctx, v)
	var already ErrAlreadyInstalled
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "1.2.3", already.Version.String())

	// Rejection is idempotent: nothing changed.
	regAfter, err := os.ReadFile(env.RegistryPath())
	require.NoError(t, err)
	assert.Equal(t, regBefore, regAfter)
	entriesAfter, err := os.ReadDir(filepath.Join(env.CacheRoot, "1.2.3"))
	require.NoError(t, err)
	assert.Equal(t, len(entriesBefore), len(entriesAfter))
}

func TestUninstall_NotInstalled(t *testing.T) {
	srv := newSDKServer(t, "1.2.3")
	defer srv.Close()

	mgr, env := newTestManager(t, srv)
	ctx := context.Background()

	err := mgr.Uninstall(ctx, version.MustParse("9.9.9"))
	var notInstalled ErrNotInstalled
	require.ErrorAs(t, err, &notInstalled)

	// No filesystem mutation beyond the guard's registry bootstrap.
	entries, err := os.ReadDir(env.CacheRoot)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "index.json", entries[0].Name())
}

func TestLaunch_NotInstalled(t *testing.T) {
	srv := newSDKServer(t, "1.2.3")
	defer srv.Close()

	mgr, _ := newTestManager(t, srv)

	err := mgr.Launch(context.Background(), version.MustParse("9.9.9"), false, nil)
	var notInstalled ErrNotInstalled
	require.ErrorAs(t, err, &notInstalled)
}

func TestList(t *testing.T) {
	srv := newSDKServer(t, "1.2.3")
	defer srv.Close()

	mgr, env := newTestManager(t, srv)
	ctx := context.Background()

	versions, err := mgr.List(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, versions)

	// Pre-seed instance folders and let the guard pick them up on the next
	// run against a fresh registry.
	require.NoError(t, os.Remove(env.RegistryPath()))
	for _, dir := range []string{"1.2.3", "2.0.0", "1.10.0", "lib"} {
		require.NoError(t, os.Mkdir(filepath.Join(env.CacheRoot, dir), 0o755))
	}

	versions, err = mgr.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "2.0.0", versions[0].String())
	assert.Equal(t, "1.10.0", versions[1].String())
}

func TestInstall_ResumesPartialArchive(t *testing.T) {
	srv := newSDKServer(t, "1.2.3")
	defer srv.Close()

	mgr, env := newTestManager(t, srv)
	ctx := context.Background()
	v := version.MustParse("1.2.3")

	// Simulate an aborted earlier attempt: the first half of the SDK
	// archive is already on disk.
	resp, err := http.Get(srv.URL + "/dl/1.2.3/renpy-1.2.3-sdk.zip")
	require.NoError(t, err)
	var full bytes.Buffer
	_, err = full.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	require.NoError(t, os.MkdirAll(env.CacheRoot, 0o755))
	partial := full.Bytes()[:full.Len()/2]
	require.NoError(t, os.WriteFile(filepath.Join(env.CacheRoot, "renpy-1.2.3-sdk.zip"), partial, 0o644))

	require.NoError(t, mgr.Install(ctx, v))

	installed, err := mgr.IsInstalled(ctx, v)
	require.NoError(t, err)
	assert.True(t, installed)
	assert.FileExists(t, filepath.Join(env.CacheRoot, "1.2.3", "renpy.py"))
}
