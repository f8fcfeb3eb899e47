package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"carebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Reserve claims res.Slot in the provider's ledger and inserts the
// reservation in one transaction. The ledger claim is a conditional update
// keyed on the slot itself ($ne on the date's array), so the
// check-and-insert is atomic at the storage layer; a whole-document
// read-modify-write would race with concurrent callers.
func (repo *MongoSchedulerRepo) Reserve(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	txnFn := func(sc mongo.SessionContext) error {
		ledgerField := "slotsBooked." + res.Slot.Date
		filter := bson.M{
			"id":        res.ProviderID,
			ledgerField: bson.M{"$ne": res.Slot.Time},
		}
		update := bson.M{
			"$push": bson.M{ledgerField: res.Slot.Time},
			"$set":  bson.M{"updatedAt": time.Now()},
		}
		r, err := repo.providerColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("ledger update failed: %w", err)
		}
		if r.MatchedCount == 0 {
			return ErrSlotConflict
		}

		if _, err := repo.reservationColl.InsertOne(sc, res); err != nil {
			return fmt.Errorf("insert reservation failed: %w", err)
		}
		return nil
	}

	if err := repo.runInSession(ctx, txnFn); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			return ErrSlotConflict
		}
		return fmt.Errorf("reserve transaction failed: %w", err)
	}
	return nil
}

// Cancel flips the reservation to cancelled and releases its slot from the
// provider's ledger in one transaction. The status flip is conditional on
// the reservation still being active; the $pull release is a no-op when the
// slot is already absent.
func (repo *MongoSchedulerRepo) Cancel(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": res.ID, "status": models.StatusActive}
		update := bson.M{"$set": bson.M{"status": models.StatusCancelled}}
		r, err := repo.reservationColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("status update failed: %w", err)
		}
		if r.MatchedCount == 0 {
			return ErrNotActive
		}

		ledgerField := "slotsBooked." + res.Slot.Date
		release := bson.M{"$pull": bson.M{ledgerField: res.Slot.Time}}
		if _, err := repo.providerColl.UpdateOne(sc, bson.M{"id": res.ProviderID}, release); err != nil {
			return fmt.Errorf("ledger release failed: %w", err)
		}
		return nil
	}

	if err := repo.runInSession(ctx, txnFn); err != nil {
		if errors.Is(err, ErrNotActive) {
			return ErrNotActive
		}
		return fmt.Errorf("cancel transaction failed: %w", err)
	}
	return nil
}

func (repo *MongoSchedulerRepo) runInSession(ctx context.Context, txnFn func(mongo.SessionContext) error) error {
	client := repo.providerColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
