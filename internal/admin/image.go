package admin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophershop/internal/netx"
)

// uploadObject is a test seam for netx.UploadToPresignedURL.
var uploadObject = netx.UploadToPresignedURL

func newImageCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage product images",
	}
	cmd.AddCommand(newImageUploadCmd(opts))
	return cmd
}

func newImageUploadCmd(opts *rootOptions) *cobra.Command {
	var (
		productID   int64
		file        string
		contentType string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a product image through a presigned URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			return opts.withBackend(cmd.Context(), func(b *backend) error {
				slot, err := b.images.PresignUpload(cmd.Context(), productID)
				if err != nil {
					return fmt.Errorf("presign upload: %w", err)
				}
				if err := uploadObject(cmd.Context(), nil, slot.URL, data, contentType); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s\n", slot.Key)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&productID, "product-id", 0, "product id")
	cmd.Flags().StringVar(&file, "file", "", "image file path")
	cmd.Flags().StringVar(&contentType, "content-type", "", "content type (sniffed when empty)")
	_ = cmd.MarkFlagRequired("product-id")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
