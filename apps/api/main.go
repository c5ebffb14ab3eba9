package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/user"
	emailsvc "github.com/trezcool/shule/services/email"
	logsvc "github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	sqlxrepos "github.com/trezcool/shule/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lshortfile)

	logger := logsvc.NewRollbarLogger(std, core.Conf)
	logger.Enable(!core.Conf.Debug)

	// set up DB
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		logger.Fatal(err.Error())
	}
	db, err := database.Open(core.Conf)
	if err != nil {
		logger.Fatal(err.Error())
	}
	defer func() { _ = db.Close() }()
	if err = database.Migrate(db); err != nil {
		logger.Fatal(err.Error())
	}

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(db, sqlxrepos.NewUserRepository(db), mailSvc)
	schoolSvc := school.NewService(db, school.Repositories{
		Teacher:    sqlxrepos.NewTeacherRepository(db),
		Student:    sqlxrepos.NewStudentRepository(db),
		Course:     sqlxrepos.NewCourseRepository(db),
		Enrollment: sqlxrepos.NewEnrollmentRepository(db),
		Attendance: sqlxrepos.NewAttendanceRepository(db),
		Leave:      sqlxrepos.NewLeaveRepository(db),
	})

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:   core.Conf.Server.Addr(),
			UserSvc:   usrSvc,
			SchoolSvc: schoolSvc,
			Logger:    logger,
			Shutdown:  shutdown,
		},
	)
	go app.Start()

	<-shutdown
	std.Println("shutting down..")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = app.Stop(ctx); err != nil {
		logger.Fatal(err.Error())
	}
}
