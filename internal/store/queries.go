package store

const (
	registerTitleQuery = `
		MERGE (t:Title {text: $text})
		ON CREATE SET t.uuid = $uuid, t.created_at = $created_at
		RETURN t.uuid AS uuid, t.created_at AS created_at
	`

	listTitlesQuery = `
		MATCH (t:Title)
		RETURN t.text AS text
		ORDER BY t.created_at
	`

	titleExistsQuery = `
		MATCH (t:Title {text: $text})
		RETURN count(t) > 0 AS exists
	`
)
