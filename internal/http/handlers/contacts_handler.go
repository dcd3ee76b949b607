// Contact HTTP handlers.
//
// This file exposes the REST endpoints backing the companion web UI:
//   - GET    /contacts            (list)
//   - POST   /contacts            (create)
//   - GET    /contacts/{id}       (fetch one)
//   - PUT    /contacts/{id}       (partial update)
//   - DELETE /contacts/{id}       (remove)
//   - GET    /contacts/export     (download workbook)
//   - POST   /contacts/import     (replace store from workbook)
//
// Handlers are transport-thin: they validate input, call the contacts
// service, and translate results into HTTP responses.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/speakergym/funnel-tracker/internal/domain"
	"github.com/speakergym/funnel-tracker/internal/services"
	"github.com/speakergym/funnel-tracker/internal/xlsx"
)

// contentTypeXLSX is the media type for .xlsx workbook downloads.
const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

//
// Service contract (context-aware)
//

// ContactsService defines the contact operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation.
type ContactsService interface {
	// List returns all contacts in store order.
	List(ctx context.Context) ([]domain.WebContact, error)
	// Get returns the contact with the given id.
	Get(ctx context.Context, id int64) (*domain.WebContact, error)
	// Create appends a new contact and returns it with id and dateAdded set.
	Create(ctx context.Context, nc services.NewContact) (*domain.WebContact, error)
	// Update applies a partial update to the contact with the given id.
	Update(ctx context.Context, id int64, upd services.WebContactUpdate) (*domain.WebContact, error)
	// Delete removes the contact with the given id.
	Delete(ctx context.Context, id int64) error
	// Import replaces the whole store with the given contacts.
	Import(ctx context.Context, contacts []domain.WebContact) (int, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for web contacts. It depends on an
// abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	contacts ContactsService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(contacts ContactsService) *Handlers {
	return &Handlers{contacts: contacts}
}

//
// DTOs
//

// CreateContactRequest is the JSON payload for creating a contact. Only name
// is required; unset booleans default to false and notes to "".
type CreateContactRequest struct {
	Name            string `json:"name" example:"Alice Papadaki"`
	Notes           string `json:"notes" example:"met at tuesday open mic"`
	JoinedCommunity bool   `json:"joinedCommunity"`
	TookChallenge   bool   `json:"tookChallenge"`
	SubmittedPaid   bool   `json:"submittedPaid"`
	Customer        bool   `json:"customer"`
}

// UpdateContactRequest is the JSON payload for partially updating a contact.
// Every field is optional; only the fields present in the body are applied.
type UpdateContactRequest struct {
	Name            *string `json:"name"`
	Notes           *string `json:"notes"`
	JoinedCommunity *bool   `json:"joinedCommunity"`
	TookChallenge   *bool   `json:"tookChallenge"`
	SubmittedPaid   *bool   `json:"submittedPaid"`
	Customer        *bool   `json:"customer"`
}

// ImportResponse reports how many rows an import replaced the store with.
type ImportResponse struct {
	Imported int `json:"imported" example:"3"`
}

//
// Helpers
//

// contactID parses the {id} path parameter. On failure it writes the 400
// error response and returns ok=false.
func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidID)
		return 0, false
	}
	return id, true
}

//
// Handlers
//

// ListContacts godoc
// @ID          listContacts
// @Summary     List all contacts
// @Description Returns every contact in the web store, in insertion order.
// @Tags        Contacts
// @Produce     json
//
// @Success     200  {array}   domain.WebContact
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	ok(c, http.StatusOK, contacts)
}

// GetContact godoc
// @ID          getContact
// @Summary     Fetch a single contact
// @Description Returns the contact with the given id.
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  integer  true  "Contact ID"  example(1755902830000)
//
// @Success     200  {object}  domain.WebContact
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid contact id"
// @Failure     404  {object}  handlers.ErrorResponse  "Contact not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	id, okID := contactID(c)
	if !okID {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, MsgContactNotFound)
	case err != nil:
		fail(c, http.StatusInternalServerError, MsgInternal)
	default:
		ok(c, http.StatusOK, contact)
	}
}

// CreateContact godoc
// @ID          createContact
// @Summary     Create a contact
// @Description Creates a contact with a millisecond-timestamp id and the
// @Description current UTC dateAdded, then returns it.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateContactRequest  true  "New contact payload"
//
// @Success     201  {object}  domain.WebContact
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid body or missing name"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts [post]
func (h *Handlers) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), services.NewContact{
		Name:            req.Name,
		Notes:           req.Notes,
		JoinedCommunity: req.JoinedCommunity,
		TookChallenge:   req.TookChallenge,
		SubmittedPaid:   req.SubmittedPaid,
		Customer:        req.Customer,
	})
	switch {
	case errors.Is(err, services.ErrNameRequired):
		fail(c, http.StatusBadRequest, MsgNameRequired)
	case err != nil:
		fail(c, http.StatusInternalServerError, MsgInternal)
	default:
		ok(c, http.StatusCreated, contact)
	}
}

// UpdateContact godoc
// @ID          updateContact
// @Summary     Partially update a contact
// @Description Overwrites only the fields present in the body and returns the
// @Description updated contact. An empty body object is a valid no-op update.
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       id    path  integer                        true  "Contact ID"
// @Param       body  body  handlers.UpdateContactRequest  true  "Fields to overwrite"
//
// @Success     200  {object}  domain.WebContact
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id or body"
// @Failure     404  {object}  handlers.ErrorResponse  "Contact not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts/{id} [put]
func (h *Handlers) UpdateContact(c *gin.Context) {
	id, okID := contactID(c)
	if !okID {
		return
	}

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), id, services.WebContactUpdate{
		Name:            req.Name,
		Notes:           req.Notes,
		JoinedCommunity: req.JoinedCommunity,
		TookChallenge:   req.TookChallenge,
		SubmittedPaid:   req.SubmittedPaid,
		Customer:        req.Customer,
	})
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, MsgContactNotFound)
	case err != nil:
		fail(c, http.StatusInternalServerError, MsgInternal)
	default:
		ok(c, http.StatusOK, contact)
	}
}

// DeleteContact godoc
// @ID          deleteContact
// @Summary     Delete a contact
// @Description Removes the contact with the given id.
// @Tags        Contacts
// @Produce     json
//
// @Param       id  path  integer  true  "Contact ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid contact id"
// @Failure     404  {object}  handlers.ErrorResponse  "Contact not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts/{id} [delete]
func (h *Handlers) DeleteContact(c *gin.Context) {
	id, okID := contactID(c)
	if !okID {
		return
	}

	err := h.contacts.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, MsgContactNotFound)
	case err != nil:
		fail(c, http.StatusInternalServerError, MsgInternal)
	default:
		noContent(c)
	}
}

// ExportContacts godoc
// @ID          exportContacts
// @Summary     Export contacts as a workbook
// @Description Streams an .xlsx workbook with one header row and one row per
// @Description contact.
// @Tags        Contacts
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//
// @Success     200  {file}    file
// @Failure     500  {object}  handlers.ErrorResponse  "Export failed"
// @Router      /contacts/export [get]
func (h *Handlers) ExportContacts(c *gin.Context) {
	contacts, err := h.contacts.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}

	buf, err := xlsx.Encode(contacts)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgExportFailed)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=contacts.xlsx")
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// ImportContacts godoc
// @ID          importContacts
// @Summary     Import contacts from a workbook
// @Description Parses an uploaded .xlsx workbook and replaces the entire
// @Description store with its rows. This is a replace, not a merge.
// @Tags        Contacts
// @Accept      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     json
//
// @Param       body  body  string  true  "Workbook bytes"
//
// @Success     200  {object}  handlers.ImportResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or invalid workbook"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /contacts/import [post]
func (h *Handlers) ImportContacts(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidWorkbook)
		return
	}
	if len(data) == 0 {
		fail(c, http.StatusBadRequest, MsgMissingFile)
		return
	}

	rows, err := xlsx.Decode(bytes.NewReader(data))
	switch {
	case errors.Is(err, xlsx.ErrWrongHeaders):
		fail(c, http.StatusBadRequest, MsgWrongHeaders)
		return
	case err != nil:
		// Anything else means the upload was not a readable workbook.
		fail(c, http.StatusBadRequest, MsgInvalidWorkbook)
		return
	}

	n, err := h.contacts.Import(c.Request.Context(), rows)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgInternal)
		return
	}
	ok(c, http.StatusOK, ImportResponse{Imported: n})
}
