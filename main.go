package main

import (
	"log"
	"time"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/config"
	"classquiz-service/internal/db"
	"classquiz-service/internal/event"
	"classquiz-service/internal/handlers"
	"classquiz-service/internal/repository"
	"classquiz-service/internal/service"
	"classquiz-service/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	gin.SetMode(cfg.GinMode)
	db.InitMongo(cfg.MongoURI)
	defer db.DisconnectMongo()

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, domain events will not be published")
	}

	// Redis-backed attempt-start tracking (optional)
	starts := store.NewStartStore(cfg.RedisAddr, cfg.RedisPassword)
	if starts == nil {
		log.Println("Redis not configured, attempt timing will trust client start times")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDatabase)

	quizRepo := repository.NewQuizRepository(database)
	quizService := service.NewQuizService(quizRepo)
	quizHandler := handlers.NewQuizHandler(quizService)

	attemptService := service.NewAttemptService(quizRepo, starts)
	attemptHandler := handlers.NewAttemptHandler(attemptService)

	api := r.Group("/api/quiz")
	api.Use(auth.Middleware(cfg.JWTSecret))

	// Teacher and admin routes
	manage := api.Group("")
	manage.Use(auth.RequireRole(auth.RoleTeacher, auth.RoleAdmin))
	{
		manage.POST("/", func(c *gin.Context) {
			quizHandler.CreateQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.created", gin.H{
					"teacher_id": c.GetString(auth.ContextUserID),
					"timestamp":  time.Now(),
				})
			}
		})
		manage.PUT("/:id", quizHandler.UpdateQuiz)
		manage.PUT("/:id/questions", quizHandler.UpdateQuestions)
		manage.POST("/:id/publish", func(c *gin.Context) {
			quizHandler.PublishQuiz(c)
			if publisher != nil {
				publisher.Publish("quiz.published", gin.H{
					"quiz_id":   c.Param("id"),
					"timestamp": time.Now(),
				})
			}
		})
		manage.POST("/:id/close", quizHandler.CloseQuiz)
		manage.DELETE("/:id", quizHandler.DeleteQuiz)
		manage.GET("/:id/results", quizHandler.GetResults(attemptService))
		// Raw quiz lists carry answer keys, so only staff may list.
		manage.GET("/", quizHandler.ListQuizzes)
	}

	// Role-filtered single quiz view for every authenticated caller
	api.GET("/:id", quizHandler.GetQuiz)

	// Student routes
	student := api.Group("")
	student.Use(auth.RequireRole(auth.RoleStudent))
	{
		student.GET("/student", attemptHandler.ListForStudent)
		student.GET("/:id/attempt", func(c *gin.Context) {
			attemptHandler.StartAttempt(c)
			if publisher != nil {
				publisher.Publish("quiz.attempt.started", gin.H{
					"quiz_id":    c.Param("id"),
					"student_id": c.GetString(auth.ContextUserID),
					"timestamp":  time.Now(),
				})
			}
		})
		student.POST("/:id/attempt", func(c *gin.Context) {
			attemptHandler.SubmitAttempt(c)
			if publisher != nil {
				eventType := "quiz.attempt.submitted"
				if c.Writer.Status() == 409 {
					eventType = "quiz.attempt.rejected"
				}
				publisher.Publish(eventType, gin.H{
					"quiz_id":    c.Param("id"),
					"student_id": c.GetString(auth.ContextUserID),
					"timestamp":  time.Now(),
				})
			}
		})
	}

	r.Run(":" + cfg.Port)
}
