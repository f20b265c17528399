package cmd

import (
	"fmt"
	"log"

	"VinylFM/config"
	"VinylFM/storage"

	"github.com/spf13/cobra"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "Cover archive connectivity test",
	Long:  `Check that the MinIO cover archive is reachable and the bucket exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		if cfg.MinioEndpoint == "" {
			log.Fatal("MINIO_ENDPOINT is not configured; the cover archive is disabled")
		}
		fmt.Printf("MinIO: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		if err := storage.InitMinio(cfg); err != nil {
			log.Fatalf("Could not connect to MinIO: %v", err)
		}
		fmt.Println("MinIO connection OK, bucket ready.")
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
}
