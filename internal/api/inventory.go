package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dealership/internal/flash"
	"dealership/internal/models"
	"dealership/internal/store"
	"dealership/internal/utils"
	"dealership/internal/validation"

	"go.uber.org/zap"
)

const (
	errClassificationExists = "That classification already exists."
	noticeVehicleAddFailed  = "Sorry, adding the vehicle failed."
	noticeVehicleUpdFailed  = "Sorry, the update failed."
)

func (s *Server) vehiclesByClassification(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "classification_id")
	if err != nil {
		s.notFound(w, r)
		return
	}

	vehicles, err := s.inventory.VehiclesByClassification(r.Context(), id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if len(vehicles) == 0 {
		s.notFound(w, r)
		return
	}

	p := s.page(r, vehicles[0].ClassificationName+" vehicles")
	p.Data = vehicles
	s.render(w, r, http.StatusOK, "inventory/classification", p)
}

func (s *Server) vehicleDetail(w http.ResponseWriter, r *http.Request) {
	v, ok := s.vehicleFromPath(w, r)
	if !ok {
		return
	}

	p := s.page(r, fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model))
	p.Data = v
	s.render(w, r, http.StatusOK, "inventory/detail", p)
}

// vehicleFromPath loads the {inv_id} vehicle, answering 404 or 500 itself
// when it returns false.
func (s *Server) vehicleFromPath(w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
	id, err := utils.PathID(r, "inv_id")
	if err != nil {
		s.notFound(w, r)
		return nil, false
	}

	v, err := s.inventory.VehicleByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(w, r)
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, err)
		return nil, false
	}
	return v, true
}

func (s *Server) inventoryManagement(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Vehicle Management")
	p.Data = p.Nav
	s.render(w, r, http.StatusOK, "inventory/management", p)
}

func (s *Server) buildAddClassification(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "inventory/add-classification", s.page(r, "Add New Classification"))
}

func (s *Server) addClassification(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PostFormValue("classification_name"))

	p := s.page(r, "Add New Classification")
	p.Form = map[string]string{"classification_name": name}

	if errs := validation.ClassificationName(name); len(errs) > 0 {
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "inventory/add-classification", p)
		return
	}

	c, err := s.inventory.AddClassification(r.Context(), name)
	if errors.Is(err, store.ErrAlreadyExists) {
		p.Errors = []string{errClassificationExists}
		s.render(w, r, http.StatusConflict, "inventory/add-classification", p)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	flash.Add(r.Context(), fmt.Sprintf("The %s classification was successfully added.", c.Name))
	s.redirect(w, r, "/inv/")
}

func (s *Server) buildAddInventory(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Add New Vehicle")
	p.Data = p.Nav
	p.Form = map[string]string{
		"inv_image":     "/images/vehicles/no-image.png",
		"inv_thumbnail": "/images/vehicles/no-image-tn.png",
	}
	s.render(w, r, http.StatusOK, "inventory/add-inventory", p)
}

func (s *Server) addInventory(w http.ResponseWriter, r *http.Request) {
	form := vehicleForm(r)

	p := s.page(r, "Add New Vehicle")
	p.Data = p.Nav
	p.Form = vehicleFormValues(form)

	if errs := validation.Vehicle(form); len(errs) > 0 {
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "inventory/add-inventory", p)
		return
	}

	v, err := s.inventory.AddVehicle(r.Context(), vehicleFromForm(form))
	if err != nil {
		s.log(r).Error("add vehicle failed", zap.Error(err))
		flash.Add(r.Context(), noticeVehicleAddFailed)
		s.render(w, r, http.StatusInternalServerError, "inventory/add-inventory", p)
		return
	}

	flash.Add(r.Context(), fmt.Sprintf("The %s %s was successfully added.", v.Make, v.Model))
	s.redirect(w, r, "/inv/")
}

func (s *Server) buildEditInventory(w http.ResponseWriter, r *http.Request) {
	v, ok := s.vehicleFromPath(w, r)
	if !ok {
		return
	}

	p := s.page(r, fmt.Sprintf("Edit %s %s", v.Make, v.Model))
	p.Data = p.Nav
	p.Form = vehicleFormValues(validation.VehicleForm{
		ClassificationID: strconv.FormatInt(v.ClassificationID, 10),
		Make:             v.Make,
		Model:            v.Model,
		Year:             strconv.Itoa(v.Year),
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            strconv.FormatFloat(v.Price, 'f', -1, 64),
		Miles:            strconv.Itoa(v.Miles),
		Color:            v.Color,
	})
	p.Form["inv_id"] = strconv.FormatInt(v.ID, 10)
	s.render(w, r, http.StatusOK, "inventory/edit-inventory", p)
}

func (s *Server) updateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseID(r.PostFormValue("inv_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}

	form := vehicleForm(r)

	p := s.page(r, fmt.Sprintf("Edit %s %s", form.Make, form.Model))
	p.Data = p.Nav
	p.Form = vehicleFormValues(form)
	p.Form["inv_id"] = strconv.FormatInt(id, 10)

	if errs := validation.Vehicle(form); len(errs) > 0 {
		p.Errors = errs
		s.render(w, r, http.StatusBadRequest, "inventory/edit-inventory", p)
		return
	}

	v := vehicleFromForm(form)
	v.ID = id

	updated, err := s.inventory.UpdateVehicle(r.Context(), v)
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		s.log(r).Error("update vehicle failed", zap.Error(err))
		flash.Add(r.Context(), noticeVehicleUpdFailed)
		s.render(w, r, http.StatusInternalServerError, "inventory/edit-inventory", p)
		return
	}

	flash.Add(r.Context(), fmt.Sprintf("The %s %s was successfully updated.", updated.Make, updated.Model))
	s.redirect(w, r, "/inv/")
}

// inventoryJSON feeds the management page's vehicle table.
func (s *Server) inventoryJSON(w http.ResponseWriter, r *http.Request) {
	id, err := utils.PathID(r, "classification_id")
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "invalid classification id"})
		return
	}

	vehicles, err := s.inventory.VehiclesByClassification(r.Context(), id)
	if err != nil {
		s.log(r).Error("inventory json failed", zap.Error(err))
		s.writeJSON(w, r, http.StatusInternalServerError, map[string]string{"error": "no data returned"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	s.writeJSON(w, r, http.StatusOK, vehicles)
}

func vehicleForm(r *http.Request) validation.VehicleForm {
	return validation.VehicleForm{
		ClassificationID: strings.TrimSpace(r.PostFormValue("classification_id")),
		Make:             strings.TrimSpace(r.PostFormValue("inv_make")),
		Model:            strings.TrimSpace(r.PostFormValue("inv_model")),
		Year:             strings.TrimSpace(r.PostFormValue("inv_year")),
		Description:      strings.TrimSpace(r.PostFormValue("inv_description")),
		Image:            strings.TrimSpace(r.PostFormValue("inv_image")),
		Thumbnail:        strings.TrimSpace(r.PostFormValue("inv_thumbnail")),
		Price:            strings.TrimSpace(r.PostFormValue("inv_price")),
		Miles:            strings.TrimSpace(r.PostFormValue("inv_miles")),
		Color:            strings.TrimSpace(r.PostFormValue("inv_color")),
	}
}

func vehicleFormValues(f validation.VehicleForm) map[string]string {
	return map[string]string{
		"classification_id": f.ClassificationID,
		"inv_make":          f.Make,
		"inv_model":         f.Model,
		"inv_year":          f.Year,
		"inv_description":   f.Description,
		"inv_image":         f.Image,
		"inv_thumbnail":     f.Thumbnail,
		"inv_price":         f.Price,
		"inv_miles":         f.Miles,
		"inv_color":         f.Color,
	}
}

// vehicleFromForm converts a form that already passed validation.Vehicle.
func vehicleFromForm(f validation.VehicleForm) models.Vehicle {
	classID, _ := strconv.ParseInt(f.ClassificationID, 10, 64)
	year, _ := strconv.Atoi(f.Year)
	price, _ := strconv.ParseFloat(f.Price, 64)
	miles, _ := strconv.Atoi(f.Miles)

	return models.Vehicle{
		ClassificationID: classID,
		Make:             f.Make,
		Model:            f.Model,
		Year:             year,
		Description:      f.Description,
		Image:            f.Image,
		Thumbnail:        f.Thumbnail,
		Price:            price,
		Miles:            miles,
		Color:            f.Color,
	}
}
