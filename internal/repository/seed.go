package repository

import (
	"context"
	"time"

	"taskhub/internal/model"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedRepository wipes and repopulates the store from a fixed fixture
// dataset, for demo and test bootstrapping. The whole reset runs in one
// transaction: either the new dataset is fully visible or nothing changed.
type SeedRepository struct {
	db *gorm.DB
}

func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

func (r *SeedRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Dependents first.
		tables := []string{
			"payments", "invoices", "comments", "tokens",
			"tasks", "projects", "clients", "users", "positions", "companies",
		}
		for _, table := range tables {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		fixture := fixtureData()
		if err := tx.Create(&fixture.Companies).Error; err != nil {
			return err
		}
		if err := tx.Create(&fixture.Positions).Error; err != nil {
			return err
		}
		if err := tx.Create(&fixture.Users).Error; err != nil {
			return err
		}
		if err := tx.Create(&fixture.Clients).Error; err != nil {
			return err
		}
		if err := tx.Create(&fixture.Projects).Error; err != nil {
			return err
		}
		return tx.Create(&fixture.Tasks).Error
	})
}

type fixture struct {
	Companies []model.Company
	Positions []model.Position
	Users     []model.User
	Clients   []model.Client
	Projects  []model.Project
	Tasks     []model.Task
}

// fixtureData builds the demo dataset: 3 companies, 5 users, 7 tasks.
// Those three counts are contractual; the rest is filler that exercises
// the interesting shapes (multi-company roles, a legacy companyIds-only
// user, a private project, billable tasks).
func fixtureData() fixture {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 1, 0)
	invDate := base.AddDate(0, 0, 10)
	amtHosting := decimal.NewFromInt(450)
	amtAudit := decimal.NewFromFloat(1280.50)

	return fixture{
		Companies: []model.Company{
			{ID: "company-acme", Name: "Acme Corp", Website: strPtr("https://acme.example.com")},
			{ID: "company-globex", Name: "Globex", Address: strPtr("12 Harbor Way, Springfield")},
			{ID: "company-initech", Name: "Initech"},
		},
		Positions: []model.Position{
			{ID: "pos-engineer", Title: "Software Engineer", CompanyID: strPtr("company-acme")},
			{ID: "pos-manager", Title: "Project Manager", CompanyID: strPtr("company-acme")},
			{ID: "pos-designer", Title: "Designer", CompanyID: strPtr("company-globex")},
			{ID: "pos-accountant", Title: "Accountant", CompanyID: strPtr("company-initech")},
		},
		Users: []model.User{
			{
				ID: "user-alice", Name: "Alice Reyes", Email: "alice@acme.example.com",
				Role: model.RoleAdmin, Password: "alice123",
				CompanyIDs: pq.StringArray{"company-acme", "company-globex"},
				CompanyRoles: model.CompanyRoleList{
					{CompanyID: "company-acme", Role: model.RoleAdmin, PositionID: strPtr("pos-manager")},
					{CompanyID: "company-globex", Role: model.RoleManager},
				},
			},
			{
				ID: "user-bob", Name: "Bob Tanaka", Email: "bob@acme.example.com",
				Role: model.RoleManager, Password: "bob123",
				PositionID: strPtr("pos-engineer"),
				CompanyIDs: pq.StringArray{"company-acme"},
				CompanyRoles: model.CompanyRoleList{
					{CompanyID: "company-acme", Role: model.RoleManager, PositionID: strPtr("pos-engineer")},
				},
			},
			{
				// Legacy shape: companyIds only, no companyRoles.
				ID: "user-carol", Name: "Carol Novak", Email: "carol@acme.example.com",
				Role: model.RoleEmployee, Password: "carol123",
				PositionID:   strPtr("pos-engineer"),
				CompanyIDs:   pq.StringArray{"company-acme"},
				CompanyRoles: model.CompanyRoleList{},
			},
			{
				ID: "user-dave", Name: "Dave Okafor", Email: "dave@globex.example.com",
				Role: model.RoleEmployee, Password: "dave123",
				PositionID: strPtr("pos-designer"),
				CompanyIDs: pq.StringArray{"company-globex"},
				CompanyRoles: model.CompanyRoleList{
					{CompanyID: "company-globex", Role: model.RoleEmployee, PositionID: strPtr("pos-designer")},
				},
			},
			{
				ID: "user-erin", Name: "Erin Walsh", Email: "erin@initech.example.com",
				Role: model.RoleEmployee, Password: "erin123",
				PositionID: strPtr("pos-accountant"),
				CompanyIDs: pq.StringArray{"company-initech"},
				CompanyRoles: model.CompanyRoleList{
					{CompanyID: "company-initech", Role: model.RoleEmployee, PositionID: strPtr("pos-accountant")},
				},
			},
		},
		Clients: []model.Client{
			{ID: "client-north", Name: "Northwind Traders", Email: "billing@northwind.example.com", Address: "1 Market St", CompanyID: "company-acme"},
			{ID: "client-south", Name: "Southline Media", Email: "accounts@southline.example.com", Address: "88 Canal Rd", CompanyID: "company-globex"},
		},
		Projects: []model.Project{
			{
				ID: "project-website", Name: "Website Relaunch", CompanyID: "company-acme",
				Description: strPtr("Marketing site rebuild"), Color: strPtr("#2563eb"),
				Visibility: model.VisibilityPublic,
				MemberIDs:  pq.StringArray{"user-alice", "user-bob", "user-carol"},
				ClientID:   strPtr("client-north"),
			},
			{
				ID: "project-mobile", Name: "Mobile App", CompanyID: "company-acme",
				Color:      strPtr("#16a34a"),
				Visibility: model.VisibilityPrivate,
				MemberIDs:  pq.StringArray{"user-alice", "user-bob"},
			},
			{
				ID: "project-rebrand", Name: "Rebrand", CompanyID: "company-globex",
				Description: strPtr("New identity rollout"),
				Visibility:  model.VisibilityPublic,
				MemberIDs:   pq.StringArray{"user-alice", "user-dave"},
				ClientID:    strPtr("client-south"),
			},
			{
				ID: "project-audit", Name: "Year-End Audit", CompanyID: "company-initech",
				Visibility: model.VisibilityPublic,
				MemberIDs:  pq.StringArray{"user-erin"},
			},
		},
		Tasks: []model.Task{
			{
				ID: "task-homepage", Title: "Design new homepage", Status: model.StatusInProgress,
				Priority: model.PriorityHigh, CreatedAt: base, DueDate: &due,
				AssignedUserIDs: pq.StringArray{"user-carol"}, Tags: pq.StringArray{"design", "web"},
				CompanyID: "company-acme", ProjectID: "project-website",
				Dependencies: pq.StringArray{},
			},
			{
				ID: "task-cms", Title: "Migrate CMS content", Status: model.StatusToDo,
				Priority: model.PriorityMedium, CreatedAt: base.Add(time.Hour),
				AssignedUserIDs: pq.StringArray{"user-bob"}, Tags: pq.StringArray{"content"},
				CompanyID: "company-acme", ProjectID: "project-website",
				Dependencies: pq.StringArray{"task-homepage"},
			},
			{
				ID: "task-hosting", Title: "Annual hosting renewal", Status: model.StatusDone,
				Priority: model.PriorityLow, CreatedAt: base.Add(2 * time.Hour),
				AssignedUserIDs: pq.StringArray{"user-bob"}, Tags: pq.StringArray{"billing"},
				CompanyID: "company-acme", ProjectID: "project-website",
				Dependencies:  pq.StringArray{},
				InvoiceVendor: strPtr("CloudHost Inc"), InvoiceNumber: strPtr("CH-2025-118"),
				InvoiceAmount: &amtHosting, InvoiceDate: &invDate,
			},
			{
				ID: "task-auth", Title: "Implement login flow", Status: model.StatusInProgress,
				Priority: model.PriorityHigh, CreatedAt: base.Add(3 * time.Hour),
				AssignedUserIDs: pq.StringArray{"user-alice"}, Tags: pq.StringArray{"mobile", "auth"},
				CompanyID: "company-acme", ProjectID: "project-mobile",
				Dependencies: pq.StringArray{},
			},
			{
				ID: "task-push", Title: "Push notification spike", Status: model.StatusToDo,
				Priority: model.PriorityMedium, CreatedAt: base.Add(4 * time.Hour),
				AssignedUserIDs: pq.StringArray{}, Tags: pq.StringArray{"mobile"},
				CompanyID: "company-acme", ProjectID: "project-mobile",
				Dependencies: pq.StringArray{"task-auth"}, ParentTaskID: strPtr("task-auth"),
			},
			{
				ID: "task-logo", Title: "Logo exploration", Status: model.StatusInProgress,
				Priority: model.PriorityMedium, CreatedAt: base.Add(5 * time.Hour),
				AssignedUserIDs: pq.StringArray{"user-dave"}, Tags: pq.StringArray{"design"},
				CompanyID: "company-globex", ProjectID: "project-rebrand",
				Dependencies: pq.StringArray{},
			},
			{
				ID: "task-ledger", Title: "Reconcile Q2 ledger", Status: model.StatusToDo,
				Priority: model.PriorityHigh, CreatedAt: base.Add(6 * time.Hour),
				AssignedUserIDs: pq.StringArray{"user-erin"}, Tags: pq.StringArray{"finance"},
				CompanyID: "company-initech", ProjectID: "project-audit",
				Dependencies:  pq.StringArray{},
				InvoiceVendor: strPtr("Ledgerly LLP"), InvoiceNumber: strPtr("LL-0042"),
				InvoiceAmount: &amtAudit, InvoiceDate: &invDate,
			},
		},
	}
}

func strPtr(s string) *string {
	return &s
}
