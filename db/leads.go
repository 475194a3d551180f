// ABOUTME: Lead and opportunity database operations
// ABOUTME: Loads pipeline rows with NULL numbers read as zero and lenient date parsing
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/pulse/models"
)

func CreateLead(db *sql.DB, lead *models.Lead) error {
	ensureID(&lead.ID)
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	if lead.Status == "" {
		lead.Status = models.LeadNew
	}

	_, err := db.Exec(`
		INSERT INTO leads (id, title, description, status, estimated_value, score,
			converted_to_opportunity, contact_id, company_id, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, lead.ID.String(), lead.Title, lead.Description, lead.Status, lead.EstimatedValue, lead.Score,
		lead.ConvertedToOpportunity, idArg(lead.ContactID), idArg(lead.CompanyID),
		timePtrArg(lead.DueDate), timeArg(lead.CreatedAt))

	return err
}

func ListLeads(db *sql.DB, loc *time.Location) ([]models.Lead, error) {
	rows, err := db.Query(`
		SELECT l.id, l.title, l.description, l.status, l.estimated_value, l.score,
			l.converted_to_opportunity, l.contact_id, c.name, l.company_id, co.name,
			l.due_date, l.created_at
		FROM leads l
		LEFT JOIN contacts c ON l.contact_id = c.id
		LEFT JOIN companies co ON l.company_id = co.id
		ORDER BY l.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		var (
			l                      models.Lead
			id                     string
			description            sql.NullString
			value, score           sql.NullFloat64
			contactID, contactName sql.NullString
			companyID, companyName sql.NullString
			dueDate, createdAt     sql.NullString
		)
		if err := rows.Scan(&id, &l.Title, &description, &l.Status, &value, &score,
			&l.ConvertedToOpportunity, &contactID, &contactName, &companyID, &companyName,
			&dueDate, &createdAt); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		l.ID = rowID
		l.Description = description.String
		l.EstimatedValue = float(value)
		l.Score = float(score)
		l.ContactID = parseIDPtr(contactID)
		l.ContactName = contactName.String
		l.CompanyID = parseIDPtr(companyID)
		l.CompanyName = companyName.String
		l.DueDate = parseTimePtr(dueDate, loc)
		l.CreatedAt = parseTime(createdAt, loc)
		leads = append(leads, models.NormalizeLead(l))
	}

	return leads, rows.Err()
}

func CreateOpportunity(db *sql.DB, opp *models.Opportunity) error {
	ensureID(&opp.ID)
	if opp.CreatedAt.IsZero() {
		opp.CreatedAt = time.Now()
	}
	if opp.Stage == "" {
		opp.Stage = models.StageQualified
	}

	_, err := db.Exec(`
		INSERT INTO opportunities (id, name, description, value, probability, stage,
			contact_id, company_id, expected_close_date, created_at, last_activity_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, opp.ID.String(), opp.Name, opp.Description, opp.Value, opp.Probability, opp.Stage,
		idArg(opp.ContactID), idArg(opp.CompanyID), timePtrArg(opp.ExpectedCloseDate),
		timeArg(opp.CreatedAt), timeArg(opp.LastActivityAt))

	return err
}

func ListOpportunities(db *sql.DB, loc *time.Location) ([]models.Opportunity, error) {
	rows, err := db.Query(`
		SELECT o.id, o.name, o.description, o.value, o.probability, o.stage,
			o.contact_id, c.name, o.company_id, co.name,
			o.expected_close_date, o.created_at, o.last_activity_at
		FROM opportunities o
		LEFT JOIN contacts c ON o.contact_id = c.id
		LEFT JOIN companies co ON o.company_id = co.id
		ORDER BY o.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opps []models.Opportunity
	for rows.Next() {
		var (
			o                                  models.Opportunity
			id                                 string
			description                        sql.NullString
			value, probability                 sql.NullFloat64
			contactID, contactName             sql.NullString
			companyID, companyName             sql.NullString
			closeDate, createdAt, lastActivity sql.NullString
		)
		if err := rows.Scan(&id, &o.Name, &description, &value, &probability, &o.Stage,
			&contactID, &contactName, &companyID, &companyName,
			&closeDate, &createdAt, &lastActivity); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		o.ID = rowID
		o.Description = description.String
		o.Value = float(value)
		o.Probability = float(probability)
		o.ContactID = parseIDPtr(contactID)
		o.ContactName = contactName.String
		o.CompanyID = parseIDPtr(companyID)
		o.CompanyName = companyName.String
		o.ExpectedCloseDate = parseTimePtr(closeDate, loc)
		o.CreatedAt = parseTime(createdAt, loc)
		o.LastActivityAt = parseTime(lastActivity, loc)
		opps = append(opps, models.NormalizeOpportunity(o))
	}

	return opps, rows.Err()
}
