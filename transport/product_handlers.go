package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

const maxUploadSize = 10 << 20 // 10 MiB

type productHandlers struct {
	products  service.ProductService
	uploadDir string
}

// create accepts a multipart form: product fields plus an "image" file.
func (h *productHandlers) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed multipart form")
		return
	}

	input, ok := h.productInput(w, r)
	if !ok {
		return
	}

	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		writeMessage(w, http.StatusBadRequest, "image file is required")
		return
	}
	name, err := saveUpload(h.uploadDir, headers[0])
	if errors.Is(err, errInvalidImageType) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	input.Image = "/public/uploads/" + name

	product, err := h.products.CreateProduct(input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newProductView(product))
}

type updateProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	RichDescription string          `json:"richDescription"`
	Image           string          `json:"image"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	CountInStock    int             `json:"countInStock"`
	Rating          float64         `json:"rating"`
	NumReviews      int             `json:"numReviews"`
	IsFeatured      bool            `json:"isFeatured"`
}

func (h *productHandlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	categoryID, err := uuid.Parse(body.Category)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid category id")
		return
	}

	product, err := h.products.UpdateProduct(id, service.ProductInput{
		Name:            body.Name,
		Description:     body.Description,
		RichDescription: body.RichDescription,
		Image:           body.Image,
		Brand:           body.Brand,
		Price:           body.Price,
		CategoryID:      categoryID,
		CountInStock:    body.CountInStock,
		Rating:          body.Rating,
		NumReviews:      body.NumReviews,
		IsFeatured:      body.IsFeatured,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(product))
}

// updateGallery replaces the product's gallery with up to ten uploaded
// images.
func (h *productHandlers) updateGallery(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed multipart form")
		return
	}

	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeMessage(w, http.StatusBadRequest, "no gallery images supplied")
		return
	}
	if len(headers) > 10 {
		headers = headers[:10]
	}

	images := make([]string, 0, len(headers))
	for _, header := range headers {
		name, err := saveUpload(h.uploadDir, header)
		if errors.Is(err, errInvalidImageType) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		images = append(images, "/public/uploads/"+name)
	}

	product, err := h.products.UpdateGallery(id, images)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(product))
}

func (h *productHandlers) list(w http.ResponseWriter, r *http.Request) {
	var categoryIDs []uuid.UUID
	if filter := r.URL.Query().Get("categories"); filter != "" {
		for _, raw := range strings.Split(filter, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "invalid category filter")
				return
			}
			categoryIDs = append(categoryIDs, id)
		}
	}

	products, err := h.products.ListProducts(categoryIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productViews(products))
}

func (h *productHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	product, err := h.products.GetProduct(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductView(product))
}

func (h *productHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.products.DeleteProduct(id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "the product is deleted")
}

func (h *productHandlers) count(w http.ResponseWriter, _ *http.Request) {
	count, err := h.products.CountProducts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"productCount": count})
}

func (h *productHandlers) featured(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(mux.Vars(r)["count"])
	if err != nil || limit < 0 {
		writeMessage(w, http.StatusBadRequest, "invalid featured count")
		return
	}
	products, err := h.products.ListFeatured(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productViews(products))
}

// productInput reads the shared multipart form fields.
func (h *productHandlers) productInput(w http.ResponseWriter, r *http.Request) (service.ProductInput, bool) {
	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid price")
		return service.ProductInput{}, false
	}
	categoryID, err := uuid.Parse(r.FormValue("category"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid category id")
		return service.ProductInput{}, false
	}
	countInStock, _ := strconv.Atoi(r.FormValue("countInStock"))
	rating, _ := strconv.ParseFloat(r.FormValue("rating"), 64)
	numReviews, _ := strconv.Atoi(r.FormValue("numReviews"))
	isFeatured, _ := strconv.ParseBool(r.FormValue("isFeatured"))

	return service.ProductInput{
		Name:            r.FormValue("name"),
		Description:     r.FormValue("description"),
		RichDescription: r.FormValue("richDescription"),
		Brand:           r.FormValue("brand"),
		Price:           price,
		CategoryID:      categoryID,
		CountInStock:    countInStock,
		Rating:          rating,
		NumReviews:      numReviews,
		IsFeatured:      isFeatured,
	}, true
}

func productViews(products []*model.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}
