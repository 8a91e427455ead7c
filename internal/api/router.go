package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmsalcedo/obrakit/internal/domain/apu"
	"github.com/jmsalcedo/obrakit/internal/domain/equipment"
	"github.com/jmsalcedo/obrakit/internal/domain/materials"
	"github.com/jmsalcedo/obrakit/internal/domain/personnel"
	"github.com/jmsalcedo/obrakit/internal/domain/projects"
	"github.com/jmsalcedo/obrakit/internal/domain/takeoff"
	"github.com/jmsalcedo/obrakit/internal/domain/units"
)

// Narrow store views over the domain repos; the pg repos satisfy them,
// and tests swap in fakes.

type TakeoffStore interface {
	CreateProfile(ctx context.Context, p takeoff.ActivityYieldProfile) (*takeoff.ActivityYieldProfile, error)
	GetProfile(ctx context.Context, id int64) (*takeoff.ActivityYieldProfile, error)
	ListProfiles(ctx context.Context) ([]takeoff.ActivityYieldProfile, error)
	DeleteProfile(ctx context.Context, id int64) error
	SaveRecord(ctx context.Context, rec takeoff.TakeoffRecord) (*takeoff.TakeoffRecord, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*takeoff.TakeoffRecord, error)
	ListRecordsByProject(ctx context.Context, projectID int64) ([]takeoff.TakeoffRecord, error)
}

type MaterialStore interface {
	Create(ctx context.Context, name, category string, unitID int64, price float64) (*materials.Material, error)
	GetByID(ctx context.Context, id int64) (*materials.Material, error)
	List(ctx context.Context, onlyActive bool) ([]materials.Material, error)
	SearchByName(ctx context.Context, q string, onlyActive bool) ([]materials.Material, error)
	UpdatePrice(ctx context.Context, id int64, price float64) (*materials.Material, error)
	SetActive(ctx context.Context, id int64, active bool) (*materials.Material, error)
	AddStock(ctx context.Context, e materials.StockEntry) (*materials.StockEntry, error)
	ListStock(ctx context.Context, materialID int64) ([]materials.StockEntry, error)
}

type StockTotaler interface {
	TotalInBaseUnit(ctx context.Context, materialID int64) (float64, string, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p projects.Project) (*projects.Project, error)
	GetByID(ctx context.Context, id int64) (*projects.Project, error)
	List(ctx context.Context) ([]projects.Project, error)
	SetStatus(ctx context.Context, id int64, status projects.Status) (*projects.Project, error)
	CreateTask(ctx context.Context, t projects.Task) (*projects.Task, error)
	ListTasks(ctx context.Context, projectID int64) ([]projects.Task, error)
	MoveTask(ctx context.Context, id int64, status projects.TaskStatus, position int) (*projects.Task, error)
	AssignTask(ctx context.Context, id int64, workerID *int64) (*projects.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type RecipeStore interface {
	Create(ctx context.Context, rec apu.Recipe) (*apu.Recipe, error)
	GetByID(ctx context.Context, id int64) (*apu.Recipe, error)
	List(ctx context.Context) ([]apu.Recipe, error)
	Delete(ctx context.Context, id int64) error
}

type EquipmentStore interface {
	Create(ctx context.Context, name, plate string, hourlyRate float64) (*equipment.Equipment, error)
	GetByID(ctx context.Context, id int64) (*equipment.Equipment, error)
	List(ctx context.Context) ([]equipment.Equipment, error)
	Assign(ctx context.Context, id int64, projectID *int64) (*equipment.Equipment, error)
	SetStatus(ctx context.Context, id int64, status equipment.Status) (*equipment.Equipment, error)
}

type WorkerStore interface {
	UpsertByPhone(ctx context.Context, fullName, phone string, role personnel.Role) (*personnel.Worker, error)
	List(ctx context.Context, onlyActive bool) ([]personnel.Worker, error)
	SetActive(ctx context.Context, id int64, active bool) (*personnel.Worker, error)
}

type Deps struct {
	Log       *slog.Logger
	Units     *units.Registry
	Takeoffs  TakeoffStore
	Materials MaterialStore
	Stock     StockTotaler
	Projects  ProjectStore
	Recipes   RecipeStore
	Equipment EquipmentStore
	Workers   WorkerStore
}

// NewRouter wires every dashboard resource under one chi router.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Route("/units", func(r chi.Router) {
		r.Get("/", d.listUnits)
		r.Post("/", d.createUnit)
		r.Get("/convert", d.convertUnits)
		r.Get("/{id}", d.getUnit)
		r.Patch("/{id}", d.updateUnit)
		r.Delete("/{id}", d.deleteUnit)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Get("/", d.listProfiles)
		r.Post("/", d.createProfile)
		r.Get("/{id}", d.getProfile)
		r.Delete("/{id}", d.deleteProfile)
	})

	r.Route("/takeoffs", func(r chi.Router) {
		r.Get("/", d.listTakeoffs)
		r.Post("/", d.computeTakeoff)
		r.Get("/{id}", d.getTakeoff)
		r.Get("/{id}/export", d.exportTakeoff)
	})

	r.Route("/materials", func(r chi.Router) {
		r.Get("/", d.listMaterials)
		r.Post("/", d.createMaterial)
		r.Get("/export", d.exportMaterials)
		r.Get("/{id}", d.getMaterial)
		r.Patch("/{id}/price", d.updateMaterialPrice)
		r.Patch("/{id}/active", d.setMaterialActive)
		r.Get("/{id}/stock", d.listStock)
		r.Post("/{id}/stock", d.addStock)
		r.Get("/{id}/stock/total", d.stockTotal)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", d.listProjects)
		r.Post("/", d.createProject)
		r.Get("/{id}", d.getProject)
		r.Patch("/{id}/status", d.setProjectStatus)
		r.Get("/{id}/tasks", d.listTasks)
		r.Post("/{id}/tasks", d.createTask)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Patch("/{id}/move", d.moveTask)
		r.Patch("/{id}/assign", d.assignTask)
		r.Delete("/{id}", d.deleteTask)
	})

	r.Route("/apu", func(r chi.Router) {
		r.Get("/", d.listRecipes)
		r.Post("/", d.createRecipe)
		r.Get("/{id}", d.getRecipe)
		r.Delete("/{id}", d.deleteRecipe)
	})

	r.Route("/equipment", func(r chi.Router) {
		r.Get("/", d.listEquipment)
		r.Post("/", d.createEquipment)
		r.Patch("/{id}/assign", d.assignEquipment)
		r.Patch("/{id}/status", d.setEquipmentStatus)
	})

	r.Route("/workers", func(r chi.Router) {
		r.Get("/", d.listWorkers)
		r.Post("/", d.upsertWorker)
		r.Patch("/{id}/active", d.setWorkerActive)
	})

	return r
}
