package models

type JournalRun struct {
	ID               string `db:"id"`
	Command          string `db:"command"`
	Intent           string `db:"intent"`
	DryRun           bool   `db:"dry_run"`
	StartedAt        string `db:"started_at"`
	FinishedAt       string `db:"finished_at"`
	Succeeded        int    `db:"succeeded"`
	AlreadySatisfied int    `db:"already_satisfied"`
	Failed           int    `db:"failed"`
	Previewed        int    `db:"previewed"`
}

type JournalEntry struct {
	RunID        string `db:"run_id"`
	Position     int    `db:"position"`
	Kind         string `db:"kind"`
	AlbumID      string `db:"album_id"`
	PhotoID      string `db:"photo_id"`
	Title        string `db:"title"`
	LocalPath    string `db:"local_path"`
	Outcome      string `db:"outcome"`
	ProducedID   string `db:"produced_id"`
	Attempts     int    `db:"attempts"`
	ErrorMessage string `db:"error_message"`
}
