// Package request содержит бизнес-логику жизненного цикла запросов на донацию.
//
// Это единственная точка, где проверяются переходы статусов и права на них:
// ни один обработчик не дублирует эти проверки. Переходы выполняются
// условными UPDATE-ами в хранилище, поэтому гонка двух одновременных
// подтверждений разрешается строго в пользу одного из них.
package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bloodaid/bloodaid/internal/domain"
	"github.com/bloodaid/bloodaid/internal/lib/sl"
	"github.com/bloodaid/bloodaid/internal/models"
	"github.com/bloodaid/bloodaid/internal/rabbitmq"
)

// Actor данные вызывающего пользователя, извлечённые из токена.
type Actor struct {
	Email string
	Name  string
	Role  string
}

// RequestRepository определяет методы хранилища запросов на донацию.
type RequestRepository interface {
	CreateRequest(ctx context.Context, r models.DonationRequest) (string, error)
	ReadRequest(ctx context.Context, id string) (*models.DonationRequest, error)
	UpdateRequest(ctx context.Context, id string, r models.DonationRequest) (int64, error)
	ClaimRequest(ctx context.Context, id, donorName, donorEmail string) (int64, error)
	ResolveRequest(ctx context.Context, id, outcome string) (int64, error)
	RemoveRequest(ctx context.Context, id string) (int64, error)
	ListRequests(ctx context.Context, filter models.RequestFilter, limit, offset int) ([]*models.DonationRequest, error)
}

// UserRepository нужен сервису для проверки блокировки вызывающего.
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Cache описывает методы для кеширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// EventPublisher публикует события жизненного цикла для внешнего нотификатора.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// LocationValidator проверяет пару район/упазила по справочнику.
type LocationValidator interface {
	ValidPair(district, upazila string) bool
}

// Event сообщение о переходе статуса запроса.
type Event struct {
	RequestID      string    `json:"request_id"`
	Status         string    `json:"status"`
	RequesterEmail string    `json:"requester_email"`
	DonorEmail     string    `json:"donor_email,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Service реализует жизненный цикл запросов на донацию.
type Service struct {
	repo      RequestRepository
	users     UserRepository
	cache     Cache
	events    EventPublisher
	locations LocationValidator
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo RequestRepository, users UserRepository, cache Cache, events EventPublisher, locations LocationValidator, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		cache:     cache,
		events:    events,
		locations: locations,
		log:       log,
	}
}

// Create создает новый запрос в статусе pending. Заблокированный
// пользователь создать запрос не может.
func (s *Service) Create(ctx context.Context, actor Actor, req models.DummyRequest) (string, error) {
	const op = "services.request.Create"

	user, err := s.users.GetUserByEmail(ctx, actor.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if user.Status == models.UserStatusBlocked {
		return "", fmt.Errorf("%s: %w", op, domain.ErrUserBlocked)
	}
	if !s.locations.ValidPair(req.RecipientDistrict, req.RecipientUpazila) {
		return "", fmt.Errorf("%s: %w", op, domain.ErrUnknownLocation)
	}

	entry := models.DonationRequest{
		RequesterName:     user.Name,
		RequesterEmail:    user.Email,
		RecipientName:     req.RecipientName,
		RecipientDistrict: req.RecipientDistrict,
		RecipientUpazila:  req.RecipientUpazila,
		HospitalName:      req.HospitalName,
		FullAddress:       req.FullAddress,
		BloodGroup:        req.BloodGroup,
		DonationDate:      req.DonationDate,
		DonationTime:      req.DonationTime,
		RequestMessage:    req.RequestMessage,
		Status:            models.RequestStatusPending,
	}

	id, err := s.repo.CreateRequest(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created donation request", slog.String("id", id))
	return id, nil
}

// Read возвращает запрос по ID, используя кеш или хранилище.
func (s *Service) Read(ctx context.Context, id string) (*models.DonationRequest, error) {
	var result *models.DonationRequest
	cacheKey := fmt.Sprintf("request:%s", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ReadRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache request", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// Edit обновляет редактируемые поля запроса. Разрешено только создателю
// или администратору и только пока запрос в статусе pending.
func (s *Service) Edit(ctx context.Context, id string, actor Actor, req models.DummyRequest) error {
	const op = "services.request.Edit"

	current, err := s.Read(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if actor.Role != models.RoleAdmin && actor.Email != current.RequesterEmail {
		return fmt.Errorf("%s: %w", op, domain.ErrPermissionDenied)
	}
	if current.Status != models.RequestStatusPending {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	if !s.locations.ValidPair(req.RecipientDistrict, req.RecipientUpazila) {
		return fmt.Errorf("%s: %w", op, domain.ErrUnknownLocation)
	}

	entry := models.DonationRequest{
		RecipientName:     req.RecipientName,
		RecipientDistrict: req.RecipientDistrict,
		RecipientUpazila:  req.RecipientUpazila,
		HospitalName:      req.HospitalName,
		FullAddress:       req.FullAddress,
		BloodGroup:        req.BloodGroup,
		DonationDate:      req.DonationDate,
		DonationTime:      req.DonationTime,
		RequestMessage:    req.RequestMessage,
	}
	rows, err := s.repo.UpdateRequest(ctx, id, entry)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		// запрос успели подтвердить между чтением и правкой
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	s.invalidate(ctx, id)
	return nil
}

// Claim переводит запрос из pending в inprogress и записывает вызывающего
// как донора. Доступно любому активному пользователю.
func (s *Service) Claim(ctx context.Context, id string, actor Actor) (*models.DonationRequest, error) {
	const op = "services.request.Claim"

	user, err := s.users.GetUserByEmail(ctx, actor.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Status == models.UserStatusBlocked {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrUserBlocked)
	}

	rows, err := s.repo.ClaimRequest(ctx, id, user.Name, user.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	if rows == 0 {
		// различаем несуществующий запрос и проигранную гонку за pending
		if _, err := s.repo.ReadRequest(ctx, id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}

	result, err := s.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.publish(rabbitmq.RoutingKeyRequestClaimed, Event{
		RequestID:      id,
		Status:         result.Status,
		RequesterEmail: result.RequesterEmail,
		DonorEmail:     result.DonorEmail,
		OccurredAt:     time.Now().UTC(),
	})
	s.log.Info("donation request claimed", slog.String("id", id), slog.String("donor", user.Email))
	return result, nil
}

// ResolveByDonor переводит запрос из inprogress в done или canceled от
// имени подобранного донора. Проверка исходного состояния выполняется
// раньше проверки прав: resolve из pending даёт conflict независимо от роли.
func (s *Service) ResolveByDonor(ctx context.Context, id, outcome string, actor Actor) error {
	const op = "services.request.ResolveByDonor"

	current, err := s.Read(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if current.Status != models.RequestStatusInProgress {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	if actor.Email != current.DonorEmail {
		return fmt.Errorf("%s: %w", op, domain.ErrPermissionDenied)
	}
	return s.resolve(ctx, op, current, outcome)
}

// ResolveByStaff привилегированный перевод inprogress -> {done, canceled}
// волонтёром или администратором. Инвариант терминальных состояний тот же,
// что и у донорского самообслуживания.
func (s *Service) ResolveByStaff(ctx context.Context, id, outcome string, actor Actor) error {
	const op = "services.request.ResolveByStaff"

	current, err := s.Read(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if current.Status != models.RequestStatusInProgress {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleVolunteer {
		return fmt.Errorf("%s: %w", op, domain.ErrPermissionDenied)
	}
	return s.resolve(ctx, op, current, outcome)
}

func (s *Service) resolve(ctx context.Context, op string, current *models.DonationRequest, outcome string) error {
	if outcome != models.RequestStatusDone && outcome != models.RequestStatusCanceled {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}

	rows, err := s.repo.ResolveRequest(ctx, current.ID, outcome)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, current.ID)
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}

	s.publish(rabbitmq.RoutingKeyRequestResolved, Event{
		RequestID:      current.ID,
		Status:         outcome,
		RequesterEmail: current.RequesterEmail,
		DonorEmail:     current.DonorEmail,
		OccurredAt:     time.Now().UTC(),
	})
	s.log.Info("donation request resolved", slog.String("id", current.ID), slog.String("outcome", outcome))
	return nil
}

// Remove удаляет запрос. Разрешено создателю или администратору в любом
// статусе, включая терминальные.
func (s *Service) Remove(ctx context.Context, id string, actor Actor) error {
	const op = "services.request.Remove"

	current, err := s.Read(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if actor.Role != models.RoleAdmin && actor.Email != current.RequesterEmail {
		return fmt.Errorf("%s: %w", op, domain.ErrPermissionDenied)
	}

	rows, err := s.repo.RemoveRequest(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, id)
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	s.log.Info("donation request removed", slog.String("id", id))
	return nil
}

// List возвращает запросы в зависимости от роли вызывающего: донор видит
// только свои, волонтёр и администратор — все.
func (s *Service) List(ctx context.Context, actor Actor, filter models.RequestFilter, limit, offset int) ([]*models.DonationRequest, error) {
	const op = "services.request.List"

	u := models.User{Role: actor.Role}
	if !u.IsPrivileged() {
		filter.RequesterEmail = actor.Email
	}
	entries, err := s.repo.ListRequests(ctx, filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

// ListPending возвращает открытые запросы для публичной витрины.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]*models.DonationRequest, error) {
	const op = "services.request.ListPending"

	entries, err := s.repo.ListRequests(ctx, models.RequestFilter{Status: models.RequestStatusPending}, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entries, nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	cacheKey := fmt.Sprintf("request:%s", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

func (s *Service) publish(routingKey string, event Event) {
	if err := s.events.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish event", slog.String("routing_key", routingKey), sl.Err(err))
	}
}
