package constants

const (
	GetActivePilots = `
	SELECT * FROM pilots WHERE is_active = true ORDER BY id OFFSET $1 LIMIT $2
	`

	GetPilotById = `
	SELECT * FROM pilots WHERE id = $1
	`

	GetPilotByCallSign = `
	SELECT * FROM pilots WHERE call_sign = $1
	`

	GetCurrencyRecordsByPilot = `
	SELECT * FROM currency_records WHERE pilot_id = $1 ORDER BY imported_at DESC
	`

	GetExpiringCurrencyRecords = `
	SELECT * FROM currency_records
	WHERE currency_type = $1 AND expiration_date IS NOT NULL AND expiration_date <= $2
	ORDER BY expiration_date
	`

	GetApiKeyStatus = `
	SELECT id, status FROM api_keys WHERE id = $1
	`
)
