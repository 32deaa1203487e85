package commandRepository

const (
	queryCreateCommandRecord = `
		INSERT INTO command_history (
			id, device_id, raw_text, action, slots,
			confidence, speech_confidence, language, audio_url, created_at
		) VALUES (
			:id, :device_id, :raw_text, :action, :slots,
			:confidence, :speech_confidence, :language, :audio_url, :created_at
		)
	`

	queryGetCommandsByDeviceID = `
		SELECT
			id, device_id, raw_text, action, slots,
			confidence, speech_confidence, language, audio_url, created_at
		FROM command_history
		WHERE device_id = :device_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountCommandsByDeviceID = `
		SELECT COUNT(*)
		FROM command_history
		WHERE device_id = :device_id
	`

	queryCreateContact = `
		INSERT INTO contacts (
			id, device_id, name, phone, created_at
		) VALUES (
			:id, :device_id, :name, :phone, :created_at
		)
	`

	queryGetContactsByDeviceID = `
		SELECT
			id, device_id, name, phone, created_at
		FROM contacts
		WHERE device_id = :device_id
		ORDER BY name
	`

	queryGetContactByName = `
		SELECT
			id, device_id, name, phone, created_at
		FROM contacts
		WHERE device_id = :device_id AND LOWER(name) = LOWER(:name)
	`

	queryDeleteContact = `
		DELETE FROM contacts
		WHERE device_id = :device_id AND id = :id
	`
)
