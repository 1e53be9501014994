package main

import (
	"anonymity-service/domain"
	"anonymity-service/repositories"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/olekukonko/tablewriter"
)

// registry_inspect dumps the registry state and its messages from a badger
// directory, without going through the service.
func main() {
	dbPath := flag.String("db", database.DefaultPath, "Path to badger DB")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "ID", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	repository := repositories.NewRegistryRepository(db, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	var state domain.State
	err = repository.View(func(store repositories.RegistryStore) error {
		var loadErr error
		state, loadErr = store.LoadState()
		return loadErr
	})
	if err != nil {
		log.Fatal("Error while loading registry state: ", err)
	}
	table.Append([]string{"STATE", "-", fmt.Sprintf("owner=%s status=%s messages=%d",
		state.Owner, state.Status(), state.MessageCount)})

	rows := 0
	err = repository.Scan(func(msg domain.Message) error {
		table.Append([]string{"MESSAGE", strconv.FormatUint(msg.ID, 10), msg.Content})
		rows++
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
	fmt.Printf("\n%d messages\n", rows)
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed writer leaves a value log to truncate, which needs a writable open
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}
			_ = db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
