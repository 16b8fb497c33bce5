package tracing

import (
	"database/sql"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteTraceWriter is a tracer that writes records to a SQLite database.
type SQLiteTraceWriter struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	records   []Record
	batchSize int
}

// NewSQLiteTraceWriter creates a new SQLiteTraceWriter. The database file
// is created at path; an empty path picks a generated name.
func NewSQLiteTraceWriter(path string) *SQLiteTraceWriter {
	w := &SQLiteTraceWriter{
		dbName:    path,
		batchSize: 100000,
	}

	atexit.Register(func() { w.Flush() })

	return w
}

// Init establishes the connection to the database and prepares the trace
// table.
func (t *SQLiteTraceWriter) Init() {
	if t.dbName == "" {
		t.dbName = "coop_trace_" + xid.New().String()
	}

	t.createDatabase()
	t.createTable()
	t.prepareStatement()
}

// Trace buffers one record for writing.
func (t *SQLiteTraceWriter) Trace(r Record) {
	t.records = append(t.records, r)
	if len(t.records) >= t.batchSize {
		t.Flush()
	}
}

// Flush writes all the buffered records to the database.
func (t *SQLiteTraceWriter) Flush() {
	if len(t.records) == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for _, r := range t.records {
		_, err := t.statement.Exec(
			r.ID,
			r.Kind,
			r.What,
			r.Where,
			r.StartTick,
			r.EndTick,
		)
		if err != nil {
			panic(err)
		}
	}

	t.records = nil
}

func (t *SQLiteTraceWriter) createDatabase() {
	filename := t.dbName + ".sqlite3"

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}
	t.DB = db
}

func (t *SQLiteTraceWriter) createTable() {
	t.mustExecute(`
		CREATE TABLE IF NOT EXISTS trace (
			id TEXT,
			kind TEXT,
			what TEXT,
			location TEXT,
			start_tick INTEGER,
			end_tick INTEGER
		)
	`)
}

func (t *SQLiteTraceWriter) prepareStatement() {
	stmt, err := t.Prepare(`
		INSERT INTO trace (id, kind, what, location, start_tick, end_tick)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		panic(err)
	}
	t.statement = stmt
}

func (t *SQLiteTraceWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		panic(err)
	}
	return res
}
