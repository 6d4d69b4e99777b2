package api

import (
	"github.com/RockeTall/CheckMate-demo/internal/exams"
	"github.com/RockeTall/CheckMate-demo/internal/grading"
	"github.com/RockeTall/CheckMate-demo/internal/memory"
	"github.com/RockeTall/CheckMate-demo/internal/submissions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Exams       exams.System
	Submissions submissions.System
	Memory      memory.System
}

// NewDomain creates all domain systems from the API runtime. The
// grading runtime is shared: exams use it for sheet extraction and
// practice generation, submissions for the grading pipeline.
func NewDomain(runtime *Runtime) *Domain {
	db := runtime.Database.Connection()

	memorySys := memory.New(db, runtime.Logger, runtime.Pagination)

	gradingRT := &grading.Runtime{
		Capability:  grading.NewCapability(runtime.Agent),
		Memory:      memorySys,
		Logger:      runtime.Logger,
		CallTimeout: runtime.Grading.CallTimeoutDuration(),
	}

	examsSys := exams.New(
		db,
		gradingRT,
		runtime.Logger,
		runtime.Pagination,
	)

	submissionsSys := submissions.New(
		db,
		runtime.Storage,
		gradingRT,
		examsSys,
		runtime.Logger,
		runtime.Pagination,
		runtime.Grading.SmartDefault,
	)

	return &Domain{
		Exams:       examsSys,
		Submissions: submissionsSys,
		Memory:      memorySys,
	}
}
