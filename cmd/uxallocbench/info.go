package main

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bnclabs/uxmalloc/arena"
	"github.com/bnclabs/uxmalloc/sysmem"
)

func init() {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the allocator's static configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("mmap threshold: %s\n", humanize.Bytes(uint64(arena.MmapThreshold)))
			fmt.Printf("page size:      %s\n", humanize.Bytes(uint64(sysmem.PageSize())))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}
