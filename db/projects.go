// ABOUTME: Project database operations
// ABOUTME: Loads projects with budget, spend, and progress normalised at the boundary
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/pulse/models"
)

func CreateProject(db *sql.DB, project *models.Project) error {
	ensureID(&project.ID)
	if project.Status == "" {
		project.Status = models.ProjectPlanning
	}

	_, err := db.Exec(`
		INSERT INTO projects (id, name, description, status, budget, actual_cost, progress,
			company_id, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, project.ID.String(), project.Name, project.Description, project.Status,
		project.Budget, project.ActualCost, project.Progress, idArg(project.CompanyID),
		timePtrArg(project.StartDate), timePtrArg(project.EndDate))

	return err
}

func ListProjects(db *sql.DB, loc *time.Location) ([]models.Project, error) {
	rows, err := db.Query(`
		SELECT p.id, p.name, p.description, p.status, p.budget, p.actual_cost, p.progress,
			p.company_id, co.name, p.start_date, p.end_date
		FROM projects p
		LEFT JOIN companies co ON p.company_id = co.id
		ORDER BY p.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var (
			p                        models.Project
			id                       string
			description              sql.NullString
			budget, actual, progress sql.NullFloat64
			companyID, companyName   sql.NullString
			startDate, endDate       sql.NullString
		)
		if err := rows.Scan(&id, &p.Name, &description, &p.Status, &budget, &actual, &progress,
			&companyID, &companyName, &startDate, &endDate); err != nil {
			return nil, err
		}
		rowID, ok := parseID(id)
		if !ok {
			continue
		}
		p.ID = rowID
		p.Description = description.String
		p.Budget = float(budget)
		p.ActualCost = float(actual)
		p.Progress = float(progress)
		p.CompanyID = parseIDPtr(companyID)
		p.CompanyName = companyName.String
		p.StartDate = parseTimePtr(startDate, loc)
		p.EndDate = parseTimePtr(endDate, loc)
		projects = append(projects, models.NormalizeProject(p))
	}

	return projects, rows.Err()
}
