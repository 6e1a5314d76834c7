package appupdate

import (
	"context"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"go.uber.org/zap"

	"github.com/kestrelhq/badgehunt/internal/core"
	"github.com/kestrelhq/badgehunt/internal/filesystem"
)

const repoSlug = "kestrelhq/badgehunt"

// Release is the subset of release metadata the updater needs.
type Release interface {
	Version() string
	AssetURL() string
	AssetName() string
}

// Updater abstracts the release source so tests can fake it.
type Updater interface {
	DetectLatest(ctx context.Context, slug string) (Release, bool, error)
	UpdateTo(ctx context.Context, assetURL, assetName, exePath string) error
}

type githubRelease struct {
	rel *selfupdate.Release
}

func (r githubRelease) Version() string   { return r.rel.Version() }
func (r githubRelease) AssetURL() string  { return r.rel.AssetURL }
func (r githubRelease) AssetName() string { return r.rel.AssetName }

// GitHubUpdater resolves releases from GitHub.
type GitHubUpdater struct{}

func (GitHubUpdater) DetectLatest(ctx context.Context, slug string) (Release, bool, error) {
	rel, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil || !found || rel == nil {
		return nil, found, err
	}
	return githubRelease{rel}, true, nil
}

func (GitHubUpdater) UpdateTo(ctx context.Context, assetURL, assetName, exePath string) error {
	return selfupdate.UpdateTo(ctx, assetURL, assetName, exePath)
}

// Check reports a newer available version on the returned channel and
// keeps the on-disk version cache fresh. A cached newer version is
// reported immediately; the remote lookup then runs in the background so
// startup never blocks on the network. The channel closes when the
// check is done and yields at most two versions.
func Check(currentVersion string, logger *zap.Logger, fs filesystem.FileSystem, updater Updater) <-chan string {
	resultChannel := make(chan string, 2)

	currentSemVer, err := semver.NewVersion(strings.TrimSpace(currentVersion))
	if err != nil {
		logger.Debug("running a dev build, skipping update check")
		close(resultChannel)
		return resultChannel
	}

	if cached := newerCachedVersion(currentSemVer, logger, fs); cached != "" {
		resultChannel <- cached
	}

	go func() {
		defer close(resultChannel)

		latest, found, err := updater.DetectLatest(context.Background(), repoSlug)
		if err != nil {
			logger.Warn("failed to check for updates", zap.Error(err))
			return
		}
		if !found {
			return
		}

		version := strings.TrimSpace(latest.Version())
		if err := fs.WriteFile(core.LatestVersionFile(), version); err != nil {
			logger.Warn("failed to cache latest version", zap.Error(err))
		}

		latestSemVer, err := semver.NewVersion(version)
		if err != nil {
			logger.Warn("failed to parse latest version", zap.String("version", version), zap.Error(err))
			return
		}
		if latestSemVer.GreaterThan(currentSemVer) {
			resultChannel <- version
		}
	}()

	return resultChannel
}

func newerCachedVersion(current *semver.Version, logger *zap.Logger, fs filesystem.FileSystem) string {
	content, err := fs.ReadFile(core.LatestVersionFile())
	if err != nil {
		return ""
	}

	cached := strings.TrimSpace(content)
	cachedSemVer, err := semver.NewVersion(cached)
	if err != nil {
		logger.Warn("ignoring malformed version cache", zap.String("version", cached))
		return ""
	}
	if cachedSemVer.GreaterThan(current) {
		return cached
	}
	return ""
}

// Apply replaces the running binary with the latest release.
func Apply(ctx context.Context, currentVersion string, logger *zap.Logger, updater Updater) error {
	latest, found, err := updater.DetectLatest(ctx, repoSlug)
	if err != nil {
		return err
	}
	if !found {
		logger.Info("no release found, nothing to update")
		return nil
	}

	if current, err := semver.NewVersion(strings.TrimSpace(currentVersion)); err == nil {
		if latestSemVer, err := semver.NewVersion(strings.TrimSpace(latest.Version())); err == nil {
			if latestSemVer.LessThanEqual(current) {
				logger.Info("already on the latest version", zap.String("version", currentVersion))
				return nil
			}
		}
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return err
	}
	if err := updater.UpdateTo(ctx, latest.AssetURL(), latest.AssetName(), exe); err != nil {
		return err
	}

	logger.Info("updated to latest version", zap.String("version", latest.Version()))
	return nil
}
