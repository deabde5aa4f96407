// Package history keeps a queryable SQLite record of scoring passes so a
// session can be reviewed after the game.
package history

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/MegaMek/megamek-sub083/trace"
)

// Store wraps a SQLite connection holding pass history.
type Store struct {
	conn *sqlx.DB
}

// PassRow is one stored pass.
type PassRow struct {
	ID         string `db:"id"`
	Turn       int    `db:"turn"`
	Unit       int    `db:"unit"`
	Profile    string `db:"profile"`
	Candidates int    `db:"candidates"`
	ElapsedNS  int64  `db:"elapsed_ns"`
	CreatedAt  int64  `db:"created_at"` // unix nanoseconds
}

func (r PassRow) Elapsed() time.Duration { return time.Duration(r.ElapsedNS) }
func (r PassRow) Created() time.Time     { return time.Unix(0, r.CreatedAt).UTC() }

// DecisionRow is one ranked decision of a pass.
type DecisionRow struct {
	PassID    string  `db:"pass_id"`
	Rank      int     `db:"rank"`
	Decision  string  `db:"decision"`
	Score     float64 `db:"score"`
	Candidate int     `db:"candidate"`
	FinalX    int     `db:"final_x"`
	FinalY    int     `db:"final_y"`
	Steps     int     `db:"steps"`
	Target    int     `db:"target"`
}

// WinCount is how often a decision ranked first.
type WinCount struct {
	Decision string `db:"decision"`
	Wins     int    `db:"wins"`
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS passes (
		id TEXT PRIMARY KEY,
		turn INTEGER NOT NULL,
		unit INTEGER NOT NULL,
		profile TEXT NOT NULL,
		candidates INTEGER NOT NULL,
		elapsed_ns INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS decisions (
		pass_id TEXT NOT NULL REFERENCES passes(id),
		rank INTEGER NOT NULL,
		decision TEXT NOT NULL,
		score REAL NOT NULL,
		candidate INTEGER NOT NULL,
		final_x INTEGER NOT NULL,
		final_y INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		target INTEGER NOT NULL,
		PRIMARY KEY (pass_id, rank)
	);

	CREATE INDEX IF NOT EXISTS idx_passes_turn ON passes(turn);
	CREATE INDEX IF NOT EXISTS idx_passes_unit ON passes(unit);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// SavePass stores a pass and its ranked decisions.
func (s *Store) SavePass(p trace.Pass) error {
	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO passes (id, turn, unit, profile, candidates, elapsed_ns, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		p.ID.String(), p.Turn, p.Unit, p.Profile, p.Candidates, int64(p.Elapsed), p.Time.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert pass: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO decisions
		(pass_id, rank, decision, score, candidate, final_x, final_y, steps, target)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range p.Entries {
		if _, err := stmt.Exec(p.ID.String(), e.Rank, e.Decision, e.Score, e.Candidate,
			e.Final.X, e.Final.Y, e.Steps, e.Target); err != nil {
			return fmt.Errorf("insert decision %d: %w", e.Rank, err)
		}
	}

	return tx.Commit()
}

// RecentPasses returns the newest passes first.
func (s *Store) RecentPasses(limit int) ([]PassRow, error) {
	var rows []PassRow
	err := s.conn.Select(&rows,
		"SELECT id, turn, unit, profile, candidates, elapsed_ns, created_at FROM passes ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return rows, err
}

// PassesForUnit returns a unit's passes in turn order.
func (s *Store) PassesForUnit(unit int) ([]PassRow, error) {
	var rows []PassRow
	err := s.conn.Select(&rows,
		"SELECT id, turn, unit, profile, candidates, elapsed_ns, created_at FROM passes WHERE unit = ? ORDER BY turn, rowid",
		unit,
	)
	return rows, err
}

// Decisions returns a pass's ranking, best first.
func (s *Store) Decisions(passID string) ([]DecisionRow, error) {
	var rows []DecisionRow
	err := s.conn.Select(&rows,
		"SELECT pass_id, rank, decision, score, candidate, final_x, final_y, steps, target FROM decisions WHERE pass_id = ? ORDER BY rank",
		passID,
	)
	return rows, err
}

// Wins counts first-ranked decisions over turns >= fromTurn, most frequent
// first.
func (s *Store) Wins(fromTurn int) ([]WinCount, error) {
	var rows []WinCount
	err := s.conn.Select(&rows, `
		SELECT d.decision AS decision, COUNT(*) AS wins
		FROM decisions d JOIN passes p ON p.id = d.pass_id
		WHERE d.rank = 1 AND p.turn >= ?
		GROUP BY d.decision
		ORDER BY wins DESC, decision`,
		fromTurn,
	)
	return rows, err
}

// LastTurn is the highest turn recorded, or 0 for an empty store.
func (s *Store) LastTurn() (int, error) {
	var turn int
	err := s.conn.Get(&turn, "SELECT COALESCE(MAX(turn), 0) FROM passes")
	return turn, err
}
