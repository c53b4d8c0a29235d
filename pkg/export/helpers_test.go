package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFiles creates files relative to root
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
}

// entryList renders usernames the way Instagram exports followers_N.json
func entryList(t *testing.T, usernames ...string) string {
	t.Helper()
	type item struct {
		Href      string `json:"href"`
		Value     string `json:"value"`
		Timestamp int64  `json:"timestamp"`
	}
	type entry struct {
		Title          string `json:"title"`
		MediaListData  []any  `json:"media_list_data"`
		StringListData []item `json:"string_list_data"`
	}
	entries := make([]entry, 0, len(usernames))
	for i, u := range usernames {
		entries = append(entries, entry{
			MediaListData:  []any{},
			StringListData: []item{{Href: "https://www.instagram.com/" + u, Value: u, Timestamp: int64(1700000000 + i)}},
		})
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	return string(data)
}

// wrapped renders usernames the way Instagram exports following.json
func wrapped(t *testing.T, key string, usernames ...string) string {
	t.Helper()
	return `{"` + key + `": ` + entryList(t, usernames...) + `}`
}
