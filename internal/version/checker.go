package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const checkTimeout = 5 * time.Second

// releaseURL points at the latest release of the project
var releaseURL = "https://api.github.com/repos/facundojmaero/gnome-shortcuts/releases/latest"

// Release is the subset of a GitHub release the checker reads
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Update describes the result of a release check
type Update struct {
	Current   string
	Latest    string
	URL       string
	Available bool
}

// CheckForUpdate fetches the latest release and compares it with currentVersion.
// Leading "v" prefixes are ignored on both sides.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Update, error) {
	release, err := fetchLatestRelease(ctx, currentVersion)
	if err != nil {
		return nil, err
	}

	update := &Update{
		Current: strings.TrimPrefix(currentVersion, "v"),
		Latest:  strings.TrimPrefix(release.TagName, "v"),
		URL:     release.HTMLURL,
	}
	update.Available = update.Latest != "" && isNewerVersion(update.Latest, update.Current)
	return update, nil
}

func fetchLatestRelease(ctx context.Context, currentVersion string) (*Release, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releaseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "gnome-shortcuts/"+currentVersion)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release lookup returned %s", resp.Status)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release: %w", err)
	}
	return &release, nil
}

// isNewerVersion reports whether latest is ahead of current.
// Pre-release and build suffixes are dropped before comparing.
func isNewerVersion(latest, current string) bool {
	a, b := parseVersion(latest), parseVersion(current)
	for len(a) < len(b) {
		a = append(a, 0)
	}
	for len(b) < len(a) {
		b = append(b, 0)
	}

	for i := range a {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	var parts []int
	for _, field := range strings.Split(version, ".") {
		n, err := strconv.Atoi(field)
		if err != nil {
			continue
		}
		parts = append(parts, n)
	}
	return parts
}
