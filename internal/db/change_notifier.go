package db

import (
	"fmt"

	"gorm.io/gorm"
)

type ChangePublisher interface {
	Publish(table string)
}

// RegisterChangeNotifier publishes the affected table after every committed
// create, update or delete that touched at least one row.
//
// The hook runs when gorm finishes the statement's own implicit transaction.
// Inside an explicit Transaction that is before the outer commit, so an
// observer re-querying on the signal may read uncommitted rows and will not
// be signalled again at commit. Only SeedDefaults writes that way, and it
// runs before anything observes.
func RegisterChangeNotifier(database *gorm.DB, publisher ChangePublisher) error {
	notify := func(tx *gorm.DB) {
		if tx.Error != nil || tx.RowsAffected == 0 || tx.Statement == nil {
			return
		}
		if table := tx.Statement.Table; table != "" {
			publisher.Publish(table)
		}
	}

	const after = "gorm:commit_or_rollback_transaction"
	callbacks := database.Callback()
	if err := callbacks.Create().After(after).Register("dailybrew:notify_create", notify); err != nil {
		return fmt.Errorf("register create notifier: %w", err)
	}
	if err := callbacks.Update().After(after).Register("dailybrew:notify_update", notify); err != nil {
		return fmt.Errorf("register update notifier: %w", err)
	}
	if err := callbacks.Delete().After(after).Register("dailybrew:notify_delete", notify); err != nil {
		return fmt.Errorf("register delete notifier: %w", err)
	}
	return nil
}
