package internal

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

// InspectRow is one line of the inspection page.
type InspectRow struct {
	Key    string
	Kind   string
	ID     string
	Detail string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// InspectHandler renders every badger entry under the "prefix" query parameter.
func InspectHandler(db *badger.DB, mapper RowMapper, statsProvider StatsProvider) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	if mapper == nil {
		mapper = DefaultMapper
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.KeyCopy(nil)), val))
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
}

// StartDebugServer serves the inspection page on all interfaces until the process exits.
func StartDebugServer(log *slog.Logger, db *badger.DB, port int, endpoint string, mapper RowMapper, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	mux.Handle(endpoint, InspectHandler(db, mapper, statsProvider))

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux); err != nil {
			log.Warn("Debug server stopped", "error", err)
		}
	}()
}

func DefaultMapper(key string, val []byte) InspectRow {
	return InspectRow{
		Key:    key,
		Kind:   "RAW",
		ID:     "-",
		Detail: fmt.Sprintf("Size: %d bytes", len(val)),
	}
}
