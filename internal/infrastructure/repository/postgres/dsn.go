package postgres

import (
	"net/url"
	"strconv"
	"strings"
)

const binaryResultParam = "disable_prepared_binary_result"

// PrepareDSN adds disable_prepared_binary_result=yes to URL-style DSNs unless
// the caller already set it. Keyword DSNs are returned as given.
func PrepareDSN(dsn string, disableBinaryResult bool) string {
	dsn = strings.TrimSpace(dsn)
	if !disableBinaryResult || !strings.Contains(dsn, "://") {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	if q.Has(binaryResultParam) {
		return dsn
	}
	q.Set(binaryResultParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// DatabaseName reads the database name from a URL or keyword DSN.
func DatabaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if strings.Contains(dsn, "://") {
		if u, err := url.Parse(dsn); err == nil {
			return strings.Trim(u.Path, "/ ")
		}
		return ""
	}
	for _, kv := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(kv, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// TraceQuery collapses whitespace and folds bulk VALUES lists to their first
// tuple so span attributes stay small.
func TraceQuery(query string) string {
	query = strings.Join(strings.Fields(query), " ")
	head, tail, ok := strings.Cut(query, " VALUES ")
	if !ok {
		return query
	}
	first, rest, more := strings.Cut(tail, "), (")
	if !more {
		return query
	}
	tuples := strings.Count(rest, "), (") + 2
	suffix := ""
	if end := strings.LastIndexByte(rest, ')'); end >= 0 {
		suffix = rest[end+1:]
	}
	return head + " VALUES " + first + ") /* " + strconv.Itoa(tuples) + " rows */" + suffix
}
