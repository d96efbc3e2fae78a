package warehouse

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medsys/hospital/internal/platform/apierr"
	"github.com/medsys/hospital/internal/platform/auth"
	"github.com/medsys/hospital/internal/platform/crud"
)

type Handler struct {
	svc *Service

	types        *crud.Handler[WarehouseType]
	medicalItems *crud.Handler[MedicalItem]
	compositions *crud.Handler[MedicalComposition]
	warehouses   *crud.Handler[Warehouse]
	items        *crud.Handler[Item]
	transitions  *crud.Handler[Transition]
}

func NewHandler(svc *Service) *Handler {
	h := &Handler{
		svc:          svc,
		types:        crud.NewHandler(TypeSchema, svc.st.Types),
		medicalItems: crud.NewHandler(MedicalItemSchema, svc.st.MedicalItems),
		compositions: crud.NewHandler(CompositionSchema, svc.st.Compositions),
		warehouses:   crud.NewHandler(WarehouseSchema, svc.st.Warehouses),
		items:        crud.NewHandler(ItemSchema, crud.Store[Item](svc.st.Items)),
		transitions:  crud.NewHandler(TransitionSchema, svc.st.Transitions),
	}
	h.compositions.BeforeSave = svc.checkComposition
	h.warehouses.BeforeSave = svc.checkWarehouse
	h.items.BeforeSave = svc.checkItem
	return h
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Stock is visible to clinicians who dispense it.
	read := api.Group("", auth.RequireRole(auth.RoleStorekeeper, auth.RolePhysician, auth.RoleNurse))
	write := api.Group("", auth.RequireRole(auth.RoleStorekeeper))

	h.types.Register(read, write, "/warehouse-types")
	h.medicalItems.Register(read, write, "/medical-items")
	h.compositions.Register(read, write, "/medical-compositions")
	h.warehouses.Register(read, write, "/warehouses")
	h.items.Register(read, write, "/warehouse-items")

	h.compositions.RegisterNested(read, "/medical-items/:id/components", "composite_item_id")
	h.items.RegisterNested(read, "/warehouses/:id/items", "warehouse_id")
	read.GET("/hospitals/:id/warehouses", h.HospitalWarehouses)

	read.GET("/warehouse-transitions", h.transitions.List)
	read.GET("/warehouse-transitions/:id", h.transitions.Get)
	write.POST("/warehouse-transitions", h.Transfer)
}

func (h *Handler) HospitalWarehouses(c echo.Context) error {
	id, err := crud.PathID(c, "id")
	if err != nil {
		return apierr.HTTP(err)
	}
	list, err := h.svc.HospitalWarehouses(c.Request().Context(), id)
	if err != nil {
		return apierr.HTTP(err)
	}
	if list == nil {
		list = []*Warehouse{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) Transfer(c echo.Context) error {
	var t Transition
	if err := apierr.Bind(c, &t); err != nil {
		return apierr.HTTP(err)
	}
	if err := h.svc.Transfer(c.Request().Context(), &t); err != nil {
		return apierr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, &t)
}
