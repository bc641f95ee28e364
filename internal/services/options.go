package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/list_catalog"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/queries/list_products"
	catalogrepo "github.com/light-bringer/fulfillment-service/internal/app/catalog/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/create_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/delete_product"
	"github.com/light-bringer/fulfillment-service/internal/app/catalog/usecases/update_product"
	"github.com/light-bringer/fulfillment-service/internal/app/events/queries/list_events"
	eventsrepo "github.com/light-bringer/fulfillment-service/internal/app/events/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/order/queries/get_order"
	"github.com/light-bringer/fulfillment-service/internal/app/order/queries/list_orders"
	orderrepo "github.com/light-bringer/fulfillment-service/internal/app/order/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/order/usecases/create_order"
	"github.com/light-bringer/fulfillment-service/internal/app/order/usecases/delete_order"
	"github.com/light-bringer/fulfillment-service/internal/app/order/usecases/update_order_status"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/queries/get_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/queries/list_testimonials"
	testimonialrepo "github.com/light-bringer/fulfillment-service/internal/app/testimonial/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/usecases/create_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/usecases/delete_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/testimonial/usecases/update_testimonial"
	"github.com/light-bringer/fulfillment-service/internal/app/user/queries/get_user"
	"github.com/light-bringer/fulfillment-service/internal/app/user/queries/list_users"
	userrepo "github.com/light-bringer/fulfillment-service/internal/app/user/repo"
	"github.com/light-bringer/fulfillment-service/internal/app/user/usecases/create_user"
	"github.com/light-bringer/fulfillment-service/internal/app/user/usecases/delete_user"
	"github.com/light-bringer/fulfillment-service/internal/app/user/usecases/update_user"
	"github.com/light-bringer/fulfillment-service/internal/config"
	"github.com/light-bringer/fulfillment-service/internal/pkg/clock"
	"github.com/light-bringer/fulfillment-service/internal/pkg/committer"
	"github.com/light-bringer/fulfillment-service/internal/pkg/idgen"
	"github.com/light-bringer/fulfillment-service/internal/pkg/metrics"
	"github.com/light-bringer/fulfillment-service/internal/pkg/outbox"
	"github.com/light-bringer/fulfillment-service/internal/scheduler"
	grpctransport "github.com/light-bringer/fulfillment-service/internal/transport/grpc"
	httptransport "github.com/light-bringer/fulfillment-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Router        *gin.Engine
	GRPCServer    *grpctransport.Server
	Scheduler     *scheduler.Scheduler
	Metrics       *metrics.Metrics
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, cfg.Spanner.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	outboxRepo := outbox.NewRepo()
	m := metrics.New()
	ids, err := idgen.NewSnowflake(cfg.IDGen.NodeID)
	if err != nil {
		spannerClient.Close()
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}

	// 3. Create repositories
	productRepo := catalogrepo.NewProductRepo(spannerClient)
	catalogReadModel := catalogrepo.NewReadModel(spannerClient)
	orderRepo := orderrepo.NewOrderRepo(spannerClient)
	testimonialRepo := testimonialrepo.NewTestimonialRepo(spannerClient)
	userRepo := userrepo.NewUserRepo(spannerClient)
	eventsReadModel := eventsrepo.NewEventsReadModel(spannerClient)

	// 4. Create command use cases (write operations) and query use cases (read operations)
	products := httptransport.NewProductHandler(
		create_product.NewInteractor(productRepo, outboxRepo, comm, ids, clk),
		update_product.NewInteractor(productRepo, outboxRepo, comm, clk),
		delete_product.NewInteractor(productRepo, outboxRepo, comm, clk),
		get_product.NewQuery(catalogReadModel),
		list_products.NewQuery(catalogReadModel),
		logger,
	)
	orders := httptransport.NewOrderHandler(
		create_order.NewInteractor(orderRepo, outboxRepo, comm, ids, clk),
		update_order_status.NewInteractor(orderRepo, outboxRepo, comm, clk),
		delete_order.NewInteractor(orderRepo, outboxRepo, comm, clk),
		get_order.NewQuery(orderRepo),
		list_orders.NewQuery(orderRepo),
		logger,
	)
	testimonials := httptransport.NewTestimonialHandler(
		create_testimonial.NewInteractor(testimonialRepo, comm, ids),
		update_testimonial.NewInteractor(testimonialRepo, comm),
		delete_testimonial.NewInteractor(testimonialRepo, comm),
		get_testimonial.NewQuery(testimonialRepo),
		list_testimonials.NewQuery(testimonialRepo),
		logger,
	)
	users := httptransport.NewUserHandler(
		create_user.NewInteractor(userRepo, comm, ids, clk, bcrypt.DefaultCost),
		update_user.NewInteractor(userRepo, comm, clk, bcrypt.DefaultCost),
		delete_user.NewInteractor(userRepo, comm),
		get_user.NewQuery(userRepo),
		list_users.NewQuery(userRepo),
		logger,
	)

	// 5. Create the maintenance scheduler and its jobs
	sched, err := NewScheduler(cfg.Scheduler, spannerClient, comm, clk, logger, m)
	if err != nil {
		spannerClient.Close()
		return nil, err
	}

	// 6. Create transports
	router := httptransport.NewRouter(httptransport.Handlers{
		Catalog:      httptransport.NewCatalogHandler(list_catalog.NewQuery(catalogReadModel, logger), m),
		Products:     products,
		Orders:       orders,
		Testimonials: testimonials,
		Users:        users,
		Cron:         httptransport.NewCronHandler(sched, logger),
		Events:       httptransport.NewEventsHandler(list_events.NewQuery(eventsReadModel), logger),
	}, logger, m)

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Router:        router,
		GRPCServer:    grpctransport.NewServer(logger),
		Scheduler:     sched,
		Metrics:       m,
	}, nil
}

// NewScheduler builds the maintenance scheduler with every job registered.
// The scheduler is returned stopped.
func NewScheduler(
	cfg config.SchedulerConfig,
	client *spanner.Client,
	exec outbox.Executor,
	clk clock.Clock,
	logger *zap.Logger,
	m *metrics.Metrics,
) (*scheduler.Scheduler, error) {
	s := scheduler.New(logger.Named("scheduler"), m, cfg.JobTimeout)

	otp := scheduler.NewOTPPurge(exec, clk, logger)
	retention := outbox.NewRetention(exec, clk, logger, cfg.CompletedRetention, cfg.FailedRetention)
	relay := outbox.NewRelay(outbox.NewSpannerStore(client), outbox.NewLogPublisher(logger), clk, logger, cfg.RelayBatchSize)

	jobs := []struct {
		name string
		spec string
		fn   scheduler.JobFunc
	}{
		{scheduler.JobOTPPurge, cfg.OTPPurgeSpec, otp.Run},
		{scheduler.JobOutboxRetention, cfg.OutboxRetentionSpec, scheduler.RetentionJob(retention)},
		{scheduler.JobOutboxRelay, cfg.OutboxRelaySpec, scheduler.RelayJob(relay)},
	}
	for _, j := range jobs {
		if err := s.Register(j.name, j.spec, j.fn); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.Scheduler != nil && s.Scheduler.Running() {
		_ = s.Scheduler.Stop()
	}
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
