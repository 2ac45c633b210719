// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/beezetrack/beezetrack-server/internal/logger"
	"github.com/beezetrack/beezetrack-server/models"
)

// deliveryRepository is the SQLite-backed implementation of
// [DeliveryRepository]. It owns all SQL touching the "deliveries" and
// "delivery_updates" tables.
type deliveryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeliveryRepository constructs a [DeliveryRepository] backed by the
// provided database connection and logger.
func NewDeliveryRepository(db *DB, logger *logger.Logger) DeliveryRepository {
	logger.Debug().Msg("creating delivery repository")
	return &deliveryRepository{
		db:     db,
		logger: logger,
	}
}

// CreateDelivery inserts the delivery row and its synthetic initial update.
//
// The two inserts are intentionally separate statements without a
// transaction: a crash between them leaves a delivery with an empty trail.
// This mirrors the documented storage contract; callers must not rely on
// atomicity here.
func (r *deliveryRepository) CreateDelivery(ctx context.Context, delivery models.Delivery, initial models.DeliveryUpdate) (models.Delivery, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, createDelivery,
		delivery.TrackingNumber, delivery.PackageType, delivery.Weight, delivery.Dimensions,
		delivery.FromAddress, delivery.ToAddress, delivery.Date, delivery.Status,
		delivery.UserID, delivery.ImageURL)
	if err != nil {
		log.Err(err).Str("func", "*deliveryRepository.CreateDelivery").Msg("error inserting delivery")
		return models.Delivery{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	deliveryID, err := result.LastInsertId()
	if err != nil {
		log.Err(err).Str("func", "*deliveryRepository.CreateDelivery").Msg("error getting inserted id")
		return models.Delivery{}, fmt.Errorf("unexpected DB error: %w", err)
	}
	delivery.ID = deliveryID

	_, err = r.db.ExecContext(ctx, createDeliveryUpdate,
		deliveryID, initial.Status, initial.Date, initial.Time, initial.Description)
	if err != nil {
		log.Err(err).Str("func", "*deliveryRepository.CreateDelivery").Msg("error inserting initial update")
		return models.Delivery{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	updates, err := r.LoadUpdates(ctx, deliveryID)
	if err != nil {
		return models.Delivery{}, err
	}
	delivery.Updates = updates

	return delivery, nil
}

// FindDeliveryByID returns the delivery with its update trail loaded.
func (r *deliveryRepository) FindDeliveryByID(ctx context.Context, deliveryID int64) (models.Delivery, error) {
	return r.findDelivery(ctx, findDeliveryByID, deliveryID)
}

// FindDeliveryByTrackingNumber returns the delivery matching the public
// tracking number, with its update trail loaded.
func (r *deliveryRepository) FindDeliveryByTrackingNumber(ctx context.Context, trackingNumber string) (models.Delivery, error) {
	return r.findDelivery(ctx, findDeliveryByTrackingNumber, trackingNumber)
}

func (r *deliveryRepository) findDelivery(ctx context.Context, query string, arg any) (models.Delivery, error) {
	log := logger.FromContext(ctx)

	var delivery models.Delivery
	row := r.db.QueryRowContext(ctx, query, arg)

	err := scanDelivery(row, &delivery)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Delivery{}, ErrDeliveryNotFound
		}

		log.Err(err).Str("func", "*deliveryRepository.findDelivery").Msg("error scanning delivery row")
		return models.Delivery{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	updates, err := r.LoadUpdates(ctx, delivery.ID)
	if err != nil {
		return models.Delivery{}, err
	}
	delivery.Updates = updates

	return delivery, nil
}

// FindDeliveriesByUserID returns all deliveries owned by the user, ordered
// by the stored date string descending, each with its updates loaded.
func (r *deliveryRepository) FindDeliveriesByUserID(ctx context.Context, userID int64) ([]models.Delivery, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findDeliveriesByUserID, userID)
	if err != nil {
		log.Err(err).Str("func", "*deliveryRepository.FindDeliveriesByUserID").Msg("error querying deliveries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	deliveries := make([]models.Delivery, 0)
	for rows.Next() {
		var delivery models.Delivery
		if err := scanDelivery(rows, &delivery); err != nil {
			log.Err(err).Str("func", "*deliveryRepository.FindDeliveriesByUserID").Msg("error scanning delivery rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		deliveries = append(deliveries, delivery)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for i := range deliveries {
		updates, err := r.LoadUpdates(ctx, deliveries[i].ID)
		if err != nil {
			return nil, err
		}
		deliveries[i].Updates = updates
	}

	return deliveries, nil
}

// AppendStatusUpdate overwrites the delivery's current status and appends
// a new row to the update trail. Two statements, no transaction; the
// current-status column converges to the newest trail entry.
func (r *deliveryRepository) AppendStatusUpdate(ctx context.Context, deliveryID int64, status string, update models.DeliveryUpdate) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateDeliveryStatus, status, deliveryID); err != nil {
		log.Err(err).Str("func", "*deliveryRepository.AppendStatusUpdate").Msg("error updating delivery status")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	_, err := r.db.ExecContext(ctx, createDeliveryUpdate,
		deliveryID, update.Status, update.Date, update.Time, update.Description)
	if err != nil {
		log.Err(err).Str("func", "*deliveryRepository.AppendStatusUpdate").Msg("error inserting status update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// UpdateImageURL persists the static path of the uploaded package image.
func (r *deliveryRepository) UpdateImageURL(ctx context.Context, deliveryID int64, imageURL string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateDeliveryImageURL, imageURL, deliveryID); err != nil {
		log.Err(err).Str("func", "*deliveryRepository.UpdateImageURL").Msg("error updating image url")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// LoadUpdates returns the delivery's status-update trail, newest first.
func (r *deliveryRepository) LoadUpdates(ctx context.Context, deliveryID int64) ([]models.DeliveryUpdate, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, loadDeliveryUpdates, deliveryID)
	if err != nil {
		log.Err(err).Str("func", "*deliveryRepository.LoadUpdates").Msg("error querying delivery updates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	updates := make([]models.DeliveryUpdate, 0)
	for rows.Next() {
		var update models.DeliveryUpdate
		err := rows.Scan(&update.ID, &update.DeliveryID, &update.Status,
			&update.Date, &update.Time, &update.Description, &update.CreatedAt)
		if err != nil {
			log.Err(err).Str("func", "*deliveryRepository.LoadUpdates").Msg("error scanning update rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		updates = append(updates, update)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return updates, nil
}

// GetDeliveryCounts returns the per-status counters for the user. Only the
// count fields of the returned [models.Statistics] are populated; the
// service layer fills the placeholder metrics.
func (r *deliveryRepository) GetDeliveryCounts(ctx context.Context, userID int64) (models.Statistics, error) {
	log := logger.FromContext(ctx)

	var stats models.Statistics

	row := r.db.QueryRowContext(ctx, countDeliveriesByUser, userID)
	if err := row.Scan(&stats.TotalDeliveries); err != nil {
		log.Err(err).Str("func", "*deliveryRepository.GetDeliveryCounts").Msg("error counting deliveries")
		return models.Statistics{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	byStatus := []struct {
		status string
		dest   *int
	}{
		{models.StatusPending, &stats.PendingDeliveries},
		{models.StatusInTransit, &stats.InTransitDeliveries},
		{models.StatusDelivered, &stats.DeliveredDeliveries},
	}
	for _, c := range byStatus {
		row := r.db.QueryRowContext(ctx, countDeliveriesByUserAndStatus, userID, c.status)
		if err := row.Scan(c.dest); err != nil {
			log.Err(err).Str("func", "*deliveryRepository.GetDeliveryCounts").Str("status", c.status).Msg("error counting deliveries by status")
			return models.Statistics{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	return stats, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanDelivery(s scanner, d *models.Delivery) error {
	return s.Scan(&d.ID, &d.TrackingNumber, &d.PackageType, &d.Weight, &d.Dimensions,
		&d.FromAddress, &d.ToAddress, &d.Date, &d.Status, &d.UserID, &d.ImageURL)
}
