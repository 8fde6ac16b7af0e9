// Package client provides commands that talk to a running arena server
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
	service    string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for a running arena server",
	Long:  `Client commands talk to the arena's gRPC ops listener.`,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the server's gRPC health status",
	RunE:  runHealth,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC ops server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")

	healthCmd.Flags().StringVar(&service, "service", "", "service name to check; empty checks the whole server")
	ClientCmd.AddCommand(healthCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	conn, err := createConnection()
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.GetStatus().String())
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("server is %s", resp.GetStatus())
	}
	return nil
}
