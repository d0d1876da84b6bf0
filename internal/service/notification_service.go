package service

import (
	"context"
	"encoding/json"
	"fmt"
	"movie_catalog/model"
	errorHandler "movie_catalog/pkg/error"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Catalog events go out over a topic exchange so downstream consumers (mail,
// bots) can pick the routing keys they care about. Publishing is best-effort:
// a broken broker never fails the request that produced the event.
const (
	notificationExchange  = "catalog.events"
	routingCommentCreated = "comment.created"
	routingFilmDeleted    = "film.deleted"
)

type INotificationService interface {
	PublishCommentCreated(comment *model.Comment, filmOwnerId int64)
	PublishFilmDeleted(film *model.Film)
	Close()
}

type NotificationService struct {
	url     string
	conn    *amqp.Connection
	channel *amqp.Channel
	mutex   sync.Mutex
}

func NewNotificationService(url string) *NotificationService {
	return &NotificationService{url: url}
}

//------------------------------------------
//------------------------------------------

type CommentCreatedEvent struct {
	CommentId   string    `json:"commentId"`
	FilmId      string    `json:"filmId"`
	AuthorId    int64     `json:"authorId"`
	FilmOwnerId int64     `json:"filmOwnerId"`
	Rating      int       `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FilmDeletedEvent struct {
	FilmId    string    `json:"filmId"`
	Name      string    `json:"name"`
	OwnerId   int64     `json:"ownerId"`
	DeletedAt time.Time `json:"deletedAt"`
}

func (s *NotificationService) PublishCommentCreated(comment *model.Comment, filmOwnerId int64) {
	event := CommentCreatedEvent{
		CommentId:   comment.ID.Hex(),
		FilmId:      comment.FilmID.Hex(),
		AuthorId:    comment.UserID,
		FilmOwnerId: filmOwnerId,
		Rating:      comment.CommentRating,
		CreatedAt:   comment.CreatedAt,
	}
	s.publish(routingCommentCreated, event)
}

func (s *NotificationService) PublishFilmDeleted(film *model.Film) {
	event := FilmDeletedEvent{
		FilmId:    film.ID.Hex(),
		Name:      film.Name,
		OwnerId:   film.UserID,
		DeletedAt: time.Now().UTC(),
	}
	s.publish(routingFilmDeleted, event)
}

//------------------------------------------
//------------------------------------------

func (s *NotificationService) publish(routingKey string, event interface{}) {
	if s.url == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		errMsg := fmt.Sprintf("Error marshaling %s event: %v", routingKey, err)
		errorHandler.SaveError(errMsg, err)
		return
	}

	channel, err := s.getChannel()
	if err != nil {
		errMsg := fmt.Sprintf("RabbitMq Error on publishing %s event: %v", routingKey, err)
		errorHandler.SaveError(errMsg, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = channel.PublishWithContext(ctx, notificationExchange, routingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   time.Now(),
		Body:        body,
	})
	if err != nil {
		s.reset()
		errMsg := fmt.Sprintf("RabbitMq Error on publishing %s event: %v", routingKey, err)
		errorHandler.SaveError(errMsg, err)
	}
}

// getChannel lazily dials the broker and declares the exchange, reconnecting
// after a failed publish.
func (s *NotificationService) getChannel() (*amqp.Channel, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.channel != nil && !s.conn.IsClosed() {
		return s.channel, nil
	}

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := channel.ExchangeDeclare(notificationExchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	s.conn = conn
	s.channel = channel
	return channel, nil
}

func (s *NotificationService) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.channel != nil {
		s.channel.Close()
		s.channel = nil
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

func (s *NotificationService) Close() {
	s.reset()
}
