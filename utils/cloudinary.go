package utils

import (
	"fmt"

	"coachbar/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// NewCloudinary initializes a Cloudinary client from the loaded configuration.
func NewCloudinary() (*cloudinary.Cloudinary, string, error) {
	cloudName := config.AppConfig.CloudinaryCloudName
	apiKey := config.AppConfig.CloudinaryAPIKey
	apiSecret := config.AppConfig.CloudinaryAPISecret

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, "", fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return cld, cloudName, nil
}
