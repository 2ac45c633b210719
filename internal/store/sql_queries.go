package store

const (
	createUser = `INSERT INTO users (name, email, password, phone, address, city, state, zip_code, bio)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	findUserByEmail = `SELECT id, name, email, password, phone, address, city, state, zip_code, bio, created_at
    FROM users
    WHERE email = ?;`

	findUserByID = `SELECT id, name, email, password, phone, address, city, state, zip_code, bio, created_at
    FROM users
    WHERE id = ?;`

	updateUserPassword = `UPDATE users
    SET password = ?
    WHERE id = ?;`

	createDelivery = `INSERT INTO deliveries (tracking_number, package_type, weight, dimensions, from_address, to_address, date, status, user_id, image_url)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	createDeliveryUpdate = `INSERT INTO delivery_updates (delivery_id, status, date, time, description)
    VALUES (?, ?, ?, ?, ?);`

	findDeliveryByID = `SELECT id, tracking_number, package_type, weight, dimensions, from_address, to_address, date, status, user_id, image_url
    FROM deliveries
    WHERE id = ?;`

	findDeliveryByTrackingNumber = `SELECT id, tracking_number, package_type, weight, dimensions, from_address, to_address, date, status, user_id, image_url
    FROM deliveries
    WHERE tracking_number = ?;`

	// Date is a human-readable string ("January 02, 2006"), so this ORDER BY
	// is lexicographic, not chronological. Kept for compatibility with the
	// existing API behavior.
	findDeliveriesByUserID = `SELECT id, tracking_number, package_type, weight, dimensions, from_address, to_address, date, status, user_id, image_url
    FROM deliveries
    WHERE user_id = ?
    ORDER BY date DESC;`

	updateDeliveryStatus = `UPDATE deliveries
    SET status = ?
    WHERE id = ?;`

	updateDeliveryImageURL = `UPDATE deliveries
    SET image_url = ?
    WHERE id = ?;`

	// id DESC is a deterministic tiebreaker for updates created within the
	// same second (created_at has second resolution).
	loadDeliveryUpdates = `SELECT id, delivery_id, status, date, time, description, created_at
    FROM delivery_updates
    WHERE delivery_id = ?
    ORDER BY created_at DESC, id DESC;`

	countDeliveriesByUser = `SELECT COUNT(*)
    FROM deliveries
    WHERE user_id = ?;`

	countDeliveriesByUserAndStatus = `SELECT COUNT(*)
    FROM deliveries
    WHERE user_id = ? AND status = ?;`
)
