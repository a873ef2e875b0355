package products

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"velora/db"
	"velora/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const productPicDir = "static/productpic"

func processProductImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	uniqueID := utils.GenerateRandomString(16)
	fileName := uniqueID + ".jpg"

	originalPath := filepath.Join(productPicDir, fileName)
	thumbDir := filepath.Join(productPicDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, fileName)

	if err := utils.EnsureDir(productPicDir); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("failed to save original image: %w", err)
	}

	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}

	return "/static/productpic/" + fileName, nil
}

// UploadProductImage attaches an uploaded image to a product (admin only).
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	imagePath, err := processProductImage(header)
	if err != nil {
		log.Println("UploadProductImage error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	productID := ps.ByName("id")
	res, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productId": productID},
		bson.M{"$push": bson.M{"images": imagePath}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not update product")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"image": imagePath})
}
