package database

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// legacyDonorTable is the pre-rename donor table. Tables created before the
// rename still carry "REFERENCES prospects" in their DDL (SQLite keeps the
// original text), and a compatibility view under this name serves queries not
// yet updated.
const legacyDonorTable = "prospects"

// tableState classifies one table's migration state, determined once at
// startup.
type tableState int

const (
	tableCurrent tableState = iota
	tableLegacyReference
	tableMissing
)

var legacyReferenceRe = regexp.MustCompile(`(?i)references\s+["'\x60]?` + legacyDonorTable + `\b`)

// rebuildSpec is the data-driven description of one table rebuild: its
// canonical shape, plus the indexes to recreate afterwards.
type rebuildSpec struct {
	Table   string
	Columns []string
	DDL     string
	Indexes []string
}

// donorDependentTables lists every table with a donor foreign key, in
// canonical shape. Rebuilds are driven entirely off this data.
var donorDependentTables = []rebuildSpec{
	{
		Table: "donor_assignments",
		Columns: []string{
			"id", "created_at", "updated_at", "client_id", "donor_id",
			"priority_level", "custom_ask_amount", "assignment_notes",
			"assigned_by", "is_active",
		},
		DDL: `CREATE TABLE "donor_assignments" (
			"id" integer PRIMARY KEY AUTOINCREMENT,
			"created_at" datetime,
			"updated_at" datetime,
			"client_id" integer NOT NULL,
			"donor_id" integer NOT NULL,
			"priority_level" integer DEFAULT 3,
			"custom_ask_amount" real,
			"assignment_notes" text,
			"assigned_by" text,
			"is_active" numeric DEFAULT true,
			CONSTRAINT "fk_donor_assignments_client" FOREIGN KEY ("client_id") REFERENCES "clients"("id") ON DELETE CASCADE,
			CONSTRAINT "fk_donor_assignments_donor" FOREIGN KEY ("donor_id") REFERENCES "donors"("id") ON DELETE CASCADE
		)`,
		Indexes: []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS "idx_donor_assignments_client_donor" ON "donor_assignments"("client_id","donor_id")`,
			`CREATE INDEX IF NOT EXISTS "idx_donor_assignments_is_active" ON "donor_assignments"("is_active")`,
		},
	},
	{
		Table: "giving_history",
		Columns: []string{
			"id", "created_at", "donor_id", "year", "candidate",
			"office_sought", "amount", "is_inkind",
		},
		DDL: `CREATE TABLE "giving_history" (
			"id" integer PRIMARY KEY AUTOINCREMENT,
			"created_at" datetime,
			"donor_id" integer NOT NULL,
			"year" integer NOT NULL,
			"candidate" text NOT NULL,
			"office_sought" text,
			"amount" real NOT NULL,
			"is_inkind" numeric DEFAULT false,
			CONSTRAINT "fk_giving_history_donor" FOREIGN KEY ("donor_id") REFERENCES "donors"("id") ON DELETE CASCADE
		)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS "idx_giving_history_donor_id" ON "giving_history"("donor_id")`,
		},
	},
	{
		Table: "call_outcomes",
		Columns: []string{
			"id", "created_at", "updated_at", "client_id", "donor_id", "status",
			"notes", "follow_up_date", "pledge_amount", "contribution_amount",
			"duration_minutes", "quality",
		},
		DDL: `CREATE TABLE "call_outcomes" (
			"id" integer PRIMARY KEY AUTOINCREMENT,
			"created_at" datetime,
			"updated_at" datetime,
			"client_id" integer NOT NULL,
			"donor_id" integer NOT NULL,
			"status" text NOT NULL,
			"notes" text,
			"follow_up_date" datetime,
			"pledge_amount" real,
			"contribution_amount" real,
			"duration_minutes" integer,
			"quality" integer,
			CONSTRAINT "fk_call_outcomes_client" FOREIGN KEY ("client_id") REFERENCES "clients"("id") ON DELETE CASCADE,
			CONSTRAINT "fk_call_outcomes_donor" FOREIGN KEY ("donor_id") REFERENCES "donors"("id") ON DELETE CASCADE
		)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS "idx_call_outcomes_client_donor" ON "call_outcomes"("client_id","donor_id")`,
		},
	},
	{
		Table: "client_donor_research",
		Columns: []string{
			"id", "created_at", "updated_at", "client_id", "donor_id",
			"research_category", "content",
		},
		DDL: `CREATE TABLE "client_donor_research" (
			"id" integer PRIMARY KEY AUTOINCREMENT,
			"created_at" datetime,
			"updated_at" datetime,
			"client_id" integer NOT NULL,
			"donor_id" integer NOT NULL,
			"research_category" text NOT NULL,
			"content" text,
			CONSTRAINT "fk_client_donor_research_client" FOREIGN KEY ("client_id") REFERENCES "clients"("id") ON DELETE CASCADE,
			CONSTRAINT "fk_client_donor_research_donor" FOREIGN KEY ("donor_id") REFERENCES "donors"("id") ON DELETE CASCADE
		)`,
		Indexes: []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS "idx_research_client_donor_category" ON "client_donor_research"("client_id","donor_id","research_category")`,
		},
	},
	{
		Table: "client_donor_notes",
		Columns: []string{
			"id", "created_at", "client_id", "donor_id", "note_type", "content",
			"is_private", "is_important", "created_by",
		},
		DDL: `CREATE TABLE "client_donor_notes" (
			"id" integer PRIMARY KEY AUTOINCREMENT,
			"created_at" datetime,
			"client_id" integer NOT NULL,
			"donor_id" integer NOT NULL,
			"note_type" text DEFAULT 'general',
			"content" text NOT NULL,
			"is_private" numeric DEFAULT false,
			"is_important" numeric DEFAULT false,
			"created_by" text,
			CONSTRAINT "fk_client_donor_notes_client" FOREIGN KEY ("client_id") REFERENCES "clients"("id") ON DELETE CASCADE,
			CONSTRAINT "fk_client_donor_notes_donor" FOREIGN KEY ("donor_id") REFERENCES "donors"("id") ON DELETE CASCADE
		)`,
		Indexes: []string{
			`CREATE INDEX IF NOT EXISTS "idx_client_donor_notes_client_donor" ON "client_donor_notes"("client_id","donor_id")`,
		},
	},
}

// donorColumnDefaults are columns added after the original schema shipped,
// ensured here with safe defaults so databases skipping AutoMigrate still get
// them.
var donorColumnDefaults = []struct {
	Column string
	DDL    string
}{
	{"donor_type", `ALTER TABLE "donors" ADD COLUMN "donor_type" varchar(20) DEFAULT 'individual'`},
	{"alternate_phone", `ALTER TABLE "donors" ADD COLUMN "alternate_phone" text`},
	{"address_line2", `ALTER TABLE "donors" ADD COLUMN "address_line2" text`},
	{"contact_first_name", `ALTER TABLE "donors" ADD COLUMN "contact_first_name" text`},
	{"contact_last_name", `ALTER TABLE "donors" ADD COLUMN "contact_last_name" text`},
	{"exclusive_donor", `ALTER TABLE "donors" ADD COLUMN "exclusive_donor" numeric DEFAULT false`},
	{"exclusive_client_id", `ALTER TABLE "donors" ADD COLUMN "exclusive_client_id" integer`},
	{"job_title", `ALTER TABLE "donors" ADD COLUMN "job_title" text`},
	{"photo_url", `ALTER TABLE "donors" ADD COLUMN "photo_url" text`},
}

// Migrate brings an existing database up to the current schema version without
// data loss. It runs once at startup, tolerates repeated runs and mixed
// states, and degrades per table: a single table's failure is logged and the
// rest still migrate. Only a missing base schema is fatal.
func Migrate(db *gorm.DB) error {
	log := logrus.WithField("component", "schema-migrator")

	for _, base := range []string{"clients", "donors"} {
		if !tableExists(db, base) {
			return fmt.Errorf("base schema missing: table %q does not exist", base)
		}
	}

	if err := ensureDonorColumns(db); err != nil {
		log.WithError(err).Error("ensuring donor columns")
	}

	for _, spec := range donorDependentTables {
		state := detectTableState(db, spec.Table)
		switch state {
		case tableMissing:
			log.WithField("table", spec.Table).Info("creating missing table")
			if err := createTable(db, spec); err != nil {
				log.WithError(err).WithField("table", spec.Table).Error("create failed, skipping")
			}
		case tableLegacyReference:
			log.WithField("table", spec.Table).Info("rebuilding table with legacy donor reference")
			if err := rebuildTable(db, spec); err != nil {
				log.WithError(err).WithField("table", spec.Table).Error("rebuild failed, skipping")
			}
		case tableCurrent:
			// nothing to do
		}
	}

	if err := backfillDonorType(db); err != nil {
		log.WithError(err).Error("backfilling donor_type")
	}

	if err := ensureCompatibilityView(db); err != nil {
		log.WithError(err).Error("ensuring legacy donor view")
	}

	return nil
}

// detectTableState classifies a table from its stored DDL.
func detectTableState(db *gorm.DB, table string) tableState {
	var ddl string
	err := db.Raw(
		`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&ddl).Error
	if err != nil || ddl == "" {
		return tableMissing
	}
	if legacyReferenceRe.MatchString(ddl) {
		return tableLegacyReference
	}
	return tableCurrent
}

func tableExists(db *gorm.DB, table string) bool {
	var n int64
	db.Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
	return n > 0
}

func tableColumns(db *gorm.DB, table string) (map[string]bool, error) {
	rows, err := db.Raw(fmt.Sprintf(`PRAGMA table_info(%q)`, table)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notnull    int
			dfltValue  interface{}
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dfltValue, &primaryKey); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

func createTable(db *gorm.DB, spec rebuildSpec) error {
	if err := db.Exec(spec.DDL).Error; err != nil {
		return err
	}
	for _, idx := range spec.Indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}
	return nil
}

// rebuildTable replaces a legacy-shaped table with its canonical form: create
// a shadow table, copy every column the two shapes share, drop the old table,
// rename the shadow into place, recreate indexes and restore the
// auto-increment counter to the prior maximum id.
func rebuildTable(db *gorm.DB, spec rebuildSpec) error {
	existing, err := tableColumns(db, spec.Table)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", spec.Table, err)
	}

	var shared []string
	for _, col := range spec.Columns {
		if existing[col] {
			shared = append(shared, fmt.Sprintf("%q", col))
		}
	}
	if len(shared) == 0 {
		return fmt.Errorf("no shared columns between legacy and canonical %s", spec.Table)
	}
	colList := strings.Join(shared, ", ")

	shadow := spec.Table + "__rebuild"
	shadowDDL := strings.Replace(spec.DDL, fmt.Sprintf("%q", spec.Table), fmt.Sprintf("%q", shadow), 1)

	// Foreign key enforcement must be off for the drop/rename dance; the
	// pragma is connection-level and cannot live inside the transaction.
	if err := db.Exec(`PRAGMA foreign_keys = OFF`).Error; err != nil {
		return err
	}
	defer db.Exec(`PRAGMA foreign_keys = ON`)

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %q`, shadow)).Error; err != nil {
			return err
		}
		if err := tx.Exec(shadowDDL).Error; err != nil {
			return fmt.Errorf("creating shadow table: %w", err)
		}
		copySQL := fmt.Sprintf(`INSERT INTO %q (%s) SELECT %s FROM %q`, shadow, colList, colList, spec.Table)
		if err := tx.Exec(copySQL).Error; err != nil {
			return fmt.Errorf("copying rows: %w", err)
		}
		if err := tx.Exec(fmt.Sprintf(`DROP TABLE %q`, spec.Table)).Error; err != nil {
			return err
		}
		if err := tx.Exec(fmt.Sprintf(`ALTER TABLE %q RENAME TO %q`, shadow, spec.Table)).Error; err != nil {
			return err
		}
		for _, idx := range spec.Indexes {
			if err := tx.Exec(idx).Error; err != nil {
				return fmt.Errorf("recreating index: %w", err)
			}
		}
		// Renaming resets AUTOINCREMENT bookkeeping; restore it so new rows
		// never reuse ids that annotation tables may still reference.
		restoreSQL := fmt.Sprintf(
			`INSERT OR REPLACE INTO sqlite_sequence (name, seq) SELECT '%s', COALESCE(MAX(id), 0) FROM %q`,
			spec.Table, spec.Table,
		)
		if err := tx.Exec(restoreSQL).Error; err != nil {
			return fmt.Errorf("restoring sequence: %w", err)
		}
		return nil
	})
}

func ensureDonorColumns(db *gorm.DB) error {
	existing, err := tableColumns(db, "donors")
	if err != nil {
		return err
	}
	for _, col := range donorColumnDefaults {
		if existing[col.Column] {
			continue
		}
		if err := db.Exec(col.DDL).Error; err != nil {
			return fmt.Errorf("adding donors.%s: %w", col.Column, err)
		}
	}
	return nil
}

// backfillDonorType keeps donor_type and the legacy is_business flag
// consistent in both directions.
func backfillDonorType(db *gorm.DB) error {
	if err := db.Exec(
		`UPDATE donors SET donor_type = 'business'
		 WHERE is_business AND (donor_type IS NULL OR donor_type = '' OR donor_type = 'individual')`,
	).Error; err != nil {
		return err
	}
	if err := db.Exec(
		`UPDATE donors SET donor_type = 'individual'
		 WHERE donor_type IS NULL OR donor_type = ''`,
	).Error; err != nil {
		return err
	}
	return db.Exec(
		`UPDATE donors SET is_business = (donor_type IN ('business', 'campaign'))`,
	).Error
}

// ensureCompatibilityView exposes the legacy donor table name as a view over
// donors for queries not yet updated. Skipped when a real legacy table still
// occupies the name.
func ensureCompatibilityView(db *gorm.DB) error {
	if tableExists(db, legacyDonorTable) {
		return nil
	}
	return db.Exec(fmt.Sprintf(
		`CREATE VIEW IF NOT EXISTS %q AS SELECT * FROM donors`, legacyDonorTable,
	)).Error
}
