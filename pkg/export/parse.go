package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/followdiff"
	"igfollowcheck/pkg/logger"
)

// Instagram usernames: 1-30 chars, alphanumeric, underscores, periods
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{1,30}$`)

// ErrUnrecognisedShape is returned for valid JSON that matches no known export layout
var ErrUnrecognisedShape = errors.New("unrecognised export shape")

// Shape identifies the layout of an export file
type Shape int

const (
	ShapeUnknown Shape = iota
	// ["alice", "bob"]
	ShapeStringList
	// [{"title": "", "string_list_data": [{"href": "...", "value": "alice", "timestamp": 1}]}]
	ShapeEntryList
	// {"relationships_following": [ ...entry list... ]}
	ShapeWrapped
	// entries carrying string_list_data anywhere deeper in the document
	ShapeNested
)

func (s Shape) String() string {
	switch s {
	case ShapeStringList:
		return "string_list"
	case ShapeEntryList:
		return "entry_list"
	case ShapeWrapped:
		return "wrapped"
	case ShapeNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Result is the outcome of parsing one export file
type Result struct {
	Shape Shape
	// Usernames in document order; duplicates are possible
	Usernames []string
	// Entries that were ignored as malformed
	Skipped int
}

// strategy extracts usernames from one shape. ok is false when the document
// does not have that shape.
type strategy struct {
	shape   Shape
	extract func(doc json.RawMessage) (res Result, ok bool)
}

// strategies are tried in order; the first match wins
var strategies = []strategy{
	{shape: ShapeStringList, extract: extractStringList},
	{shape: ShapeEntryList, extract: extractEntryList},
	{shape: ShapeWrapped, extract: extractWrapped},
	{shape: ShapeNested, extract: extractNested},
}

// Parse decodes an export document and extracts its usernames
func Parse(data []byte) (Result, error) {
	if !json.Valid(data) {
		var probe interface{}
		err := json.Unmarshal(data, &probe)
		return Result{}, fmt.Errorf("invalid JSON: %w", err)
	}

	doc := json.RawMessage(bytes.TrimSpace(data))
	for _, s := range strategies {
		if res, ok := s.extract(doc); ok {
			res.Shape = s.shape
			return res, nil
		}
	}
	return Result{}, ErrUnrecognisedShape
}

// ParseFile reads and parses a single export file
func ParseFile(filePath string) (Result, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Result{}, igerrors.NewParse(filePath, "failed to open file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Result{}, igerrors.NewParse(filePath, "failed to read file", err)
	}

	res, err := Parse(data)
	if err != nil {
		return Result{}, igerrors.NewParse(filePath, "cannot extract usernames", err)
	}
	return res, nil
}

// extractStringList matches arrays of scalars holding at least one string.
// Non-string scalars are counted as skipped.
func extractStringList(doc json.RawMessage) (Result, bool) {
	var items []json.RawMessage
	if !isArray(doc) {
		return Result{}, false
	}
	if err := json.Unmarshal(doc, &items); err != nil {
		return Result{}, false
	}

	var res Result
	texts := 0
	for _, item := range items {
		if isObject(item) || isArray(item) {
			return Result{}, false
		}
		name, ok := rawString(item)
		if !ok {
			res.Skipped++
			continue
		}
		texts++
		if IsValidUsername(name) {
			res.Usernames = append(res.Usernames, name)
		} else {
			res.Skipped++
		}
	}
	if len(items) > 0 && texts == 0 {
		return Result{}, false
	}
	return res, true
}

func extractEntryList(doc json.RawMessage) (Result, bool) {
	var items []json.RawMessage
	if !isArray(doc) {
		return Result{}, false
	}
	if err := json.Unmarshal(doc, &items); err != nil {
		return Result{}, false
	}

	var res Result
	objects := 0
	for _, item := range items {
		if !isObject(item) {
			res.Skipped++
			continue
		}
		objects++

		names := entryUsernames(item)
		if len(names) == 0 {
			res.Skipped++
			continue
		}
		res.Usernames = append(res.Usernames, names...)
	}
	if objects == 0 {
		return Result{}, false
	}
	return res, true
}

func extractWrapped(doc json.RawMessage) (Result, bool) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(doc, &wrapper); err != nil {
		return Result{}, false
	}

	keys := make([]string, 0, len(wrapper))
	for k := range wrapper {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var res Result
	matched := false
	for _, k := range keys {
		value := wrapper[k]
		inner, ok := extractStringList(value)
		if !ok {
			inner, ok = extractEntryList(value)
		}
		if !ok {
			continue
		}
		matched = true
		res.Usernames = append(res.Usernames, inner.Usernames...)
		res.Skipped += inner.Skipped
	}
	return res, matched
}

// extractNested walks the whole document and collects every object that
// carries string_list_data, however deeply it is wrapped
func extractNested(doc json.RawMessage) (Result, bool) {
	var res Result
	entries := collectEntries(doc, &res)
	return res, entries > 0
}

// collectEntries returns the number of entry objects found below raw
func collectEntries(raw json.RawMessage, res *Result) int {
	switch {
	case isObject(raw):
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return 0
		}
		if _, ok := fields["string_list_data"]; ok {
			if names := entryUsernames(raw); len(names) > 0 {
				res.Usernames = append(res.Usernames, names...)
			} else {
				res.Skipped++
			}
			return 1
		}

		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		found := 0
		for _, k := range keys {
			found += collectEntries(fields[k], res)
		}
		return found
	case isArray(raw):
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return 0
		}
		found := 0
		for _, item := range items {
			found += collectEntries(item, res)
		}
		return found
	default:
		return 0
	}
}

// rawEntry is one relationship record of an entry list
type rawEntry struct {
	Title          json.RawMessage   `json:"title"`
	StringListData []json.RawMessage `json:"string_list_data"`
}

// entryUsernames pulls usernames out of one entry. The string_list_data
// values are preferred; newer exports carry the username in the title or
// only in the profile href.
func entryUsernames(item json.RawMessage) []string {
	var entry rawEntry
	if err := json.Unmarshal(item, &entry); err != nil {
		return nil
	}

	// Non-object elements of string_list_data are ignored
	var data []map[string]json.RawMessage
	for _, raw := range entry.StringListData {
		var fields map[string]json.RawMessage
		if !isObject(raw) || json.Unmarshal(raw, &fields) != nil {
			continue
		}
		data = append(data, fields)
	}

	var names []string
	for _, fields := range data {
		if name, ok := rawString(fields["value"]); ok && IsValidUsername(name) {
			names = append(names, name)
		}
	}
	if len(names) > 0 {
		return names
	}

	if title, ok := rawString(entry.Title); ok && IsValidUsername(title) {
		return []string{title}
	}

	for _, fields := range data {
		if href, ok := rawString(fields["href"]); ok {
			if name := usernameFromHref(href); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// usernameFromHref extracts the profile name from links such as
// https://www.instagram.com/_u/alice or https://www.instagram.com/alice/
func usernameFromHref(href string) string {
	u, err := url.Parse(href)
	if err != nil || !strings.Contains(strings.ToLower(u.Host), "instagram.com") {
		return ""
	}
	name := path.Base(strings.TrimSuffix(u.Path, "/"))
	if IsValidUsername(name) && name != "_u" {
		return name
	}
	return ""
}

func rawString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// IsValidUsername reports whether name looks like an Instagram username
func IsValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// FileFailure records an export file that was skipped
type FileFailure struct {
	Path string
	Err  error
}

// FileReport records an export file that was parsed
type FileReport struct {
	Path      string
	Shape     Shape
	Usernames int
	Skipped   int
}

// CategoryReport summarises the loading of one category
type CategoryReport struct {
	Category Category
	Parsed   []FileReport
	Failed   []FileFailure
}

// SkippedEntries returns the total number of malformed entries ignored
func (r *CategoryReport) SkippedEntries() int {
	total := 0
	for _, f := range r.Parsed {
		total += f.Skipped
	}
	return total
}

// LoadCategory parses every file of a category and unions the usernames.
// Unparseable files are logged and skipped; the call only fails when files
// were given and none of them parsed.
func LoadCategory(category Category, paths []string) (followdiff.Set, *CategoryReport, error) {
	set := followdiff.NewSet()
	report := &CategoryReport{Category: category}

	for _, p := range paths {
		res, err := ParseFile(p)
		if err != nil {
			logger.LogFileSkipped(p, err)
			report.Failed = append(report.Failed, FileFailure{Path: p, Err: err})
			continue
		}

		set.Add(res.Usernames...)
		report.Parsed = append(report.Parsed, FileReport{
			Path:      p,
			Shape:     res.Shape,
			Usernames: len(res.Usernames),
			Skipped:   res.Skipped,
		})
		logger.LogFileParsed(p, res.Shape.String(), len(res.Usernames), res.Skipped)
	}

	if len(paths) > 0 && len(report.Parsed) == 0 {
		causes := make([]error, 0, len(report.Failed))
		for _, f := range report.Failed {
			causes = append(causes, f.Err)
		}
		return set, report, igerrors.NewParse("",
			fmt.Sprintf("no valid JSON parsed for %s", category), errors.Join(causes...))
	}

	return set, report, nil
}
