package leave

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates the leave tables and the exclusion constraint that stops two
// live requests of one employee from overlapping, even under concurrent creates.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&LeaveRequest{}, &LeaveApproval{}); err != nil {
		return err
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}

	return db.Exec(fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%[1]s') THEN
		ALTER TABLE leave_requests ADD CONSTRAINT %[1]s
			EXCLUDE USING gist (
				employee_id WITH =,
				daterange(start_date, end_date, '[]') WITH &&
			) WHERE (status IN ('%[2]s', '%[3]s'));
	END IF;
END $$;`, overlapConstraint, StatusPending, StatusApproved)).Error
}
