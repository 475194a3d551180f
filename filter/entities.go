// ABOUTME: Field sets describing how each CRM entity is searched and filtered
// ABOUTME: Shared by the CLI, MCP query tool, and TUI so every surface filters alike
package filter

import "github.com/harperreed/pulse/models"

var ContactFields = Fields[models.Contact]{
	Text: []func(models.Contact) string{
		func(c models.Contact) string { return c.Name },
		func(c models.Contact) string { return c.Email },
		func(c models.Contact) string { return c.CompanyName },
	},
	Categories: map[string]func(models.Contact) string{
		"status": func(c models.Contact) string { return c.Status },
	},
}

var CompanyFields = Fields[models.Company]{
	Text: []func(models.Company) string{
		func(c models.Company) string { return c.Name },
		func(c models.Company) string { return c.Industry },
	},
	Categories: map[string]func(models.Company) string{
		"industry": func(c models.Company) string { return c.Industry },
	},
}

var LeadFields = Fields[models.Lead]{
	Text: []func(models.Lead) string{
		func(l models.Lead) string { return l.Title },
		func(l models.Lead) string { return l.Description },
		func(l models.Lead) string { return l.ContactName },
		func(l models.Lead) string { return l.CompanyName },
	},
	Categories: map[string]func(models.Lead) string{
		"status": func(l models.Lead) string { return l.Status },
	},
	Numbers: map[string]func(models.Lead) float64{
		"value": func(l models.Lead) float64 { return l.EstimatedValue },
		"score": func(l models.Lead) float64 { return l.Score },
	},
}

var OpportunityFields = Fields[models.Opportunity]{
	Text: []func(models.Opportunity) string{
		func(o models.Opportunity) string { return o.Name },
		func(o models.Opportunity) string { return o.Description },
		func(o models.Opportunity) string { return o.ContactName },
		func(o models.Opportunity) string { return o.CompanyName },
	},
	Categories: map[string]func(models.Opportunity) string{
		"stage": func(o models.Opportunity) string { return o.Stage },
	},
	Numbers: map[string]func(models.Opportunity) float64{
		"value":       func(o models.Opportunity) float64 { return o.Value },
		"probability": func(o models.Opportunity) float64 { return o.Probability },
	},
}

var ProjectFields = Fields[models.Project]{
	Text: []func(models.Project) string{
		func(p models.Project) string { return p.Name },
		func(p models.Project) string { return p.Description },
		func(p models.Project) string { return p.CompanyName },
	},
	Categories: map[string]func(models.Project) string{
		"status": func(p models.Project) string { return p.Status },
	},
	Numbers: map[string]func(models.Project) float64{
		"budget":   func(p models.Project) float64 { return p.Budget },
		"progress": func(p models.Project) float64 { return p.Progress },
	},
}

var EventFields = Fields[models.CalendarEvent]{
	Text: []func(models.CalendarEvent) string{
		func(e models.CalendarEvent) string { return e.Title },
		func(e models.CalendarEvent) string { return e.Description },
		func(e models.CalendarEvent) string { return e.Location },
	},
	Categories: map[string]func(models.CalendarEvent) string{
		"type":   func(e models.CalendarEvent) string { return e.Type },
		"status": func(e models.CalendarEvent) string { return e.Status },
	},
}

var EmailFields = Fields[models.Email]{
	Text: []func(models.Email) string{
		func(e models.Email) string { return e.Subject },
		func(e models.Email) string { return e.FromAddress },
		func(e models.Email) string { return e.ToAddress },
	},
	Categories: map[string]func(models.Email) string{
		"type":   func(e models.Email) string { return e.Type },
		"status": func(e models.Email) string { return e.Status },
	},
}

var ActivityFields = Fields[models.Activity]{
	Text: []func(models.Activity) string{
		func(a models.Activity) string { return a.Subject },
		func(a models.Activity) string { return a.Outcome },
		func(a models.Activity) string { return a.ContactName },
	},
	Categories: map[string]func(models.Activity) string{
		"type": func(a models.Activity) string { return a.Type },
	},
}
