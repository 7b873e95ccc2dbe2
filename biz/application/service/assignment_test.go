package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"flashcard-show/biz/application/dto/flashcard/show"
	"flashcard-show/biz/infrastructure/consts"
	"flashcard-show/biz/infrastructure/repository/assignment"
	"flashcard-show/biz/infrastructure/repository/class"
	"flashcard-show/biz/infrastructure/repository/flashcard"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type assignmentFixture struct {
	svc           *AssignmentService
	assignments   *fakeAssignmentMapper
	submissions   *fakeSubmissionMapper
	classes       *fakeClassMapper
	members       *fakeMemberMapper
	sets          *fakeSetMapper
	notifications *fakeNotificationMapper
	class         *class.Class
	set           *flashcard.Set
	assignment    *assignment.Assignment
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()
	setupConfig(t)
	freezeTime(t, baseTime)

	f := &assignmentFixture{
		assignments:   newFakeAssignmentMapper(),
		submissions:   newFakeSubmissionMapper(),
		classes:       newFakeClassMapper(),
		members:       &fakeMemberMapper{},
		sets:          newFakeSetMapper(),
		notifications: &fakeNotificationMapper{},
	}
	f.svc = &AssignmentService{
		AssignmentMapper: f.assignments,
		SubmissionMapper: f.submissions,
		ClassMapper:      f.classes,
		MemberMapper:     f.members,
		SetMapper:        f.sets,
		ImageSigner:      prefixSigner{},
		Notifier:         &NotificationService{NotificationMapper: f.notifications},
	}

	f.class = &class.Class{Name: "7A", CreatorID: "teacher-1", InviteCode: "ABCD2345", MemberCount: 3, AssignmentCount: 1}
	require.NoError(t, f.classes.Insert(context.Background(), f.class))
	for _, uid := range []string{"student-1", "student-2"} {
		require.NoError(t, f.members.Insert(context.Background(), &class.Member{ClassID: f.class.ID.Hex(), UserID: uid, Role: consts.RoleStudent}))
	}

	f.set = &flashcard.Set{
		OwnerID: "teacher-1",
		Title:   "Chemistry",
		Cards: []*flashcard.Card{
			{Term: "H2O", Definition: "Water", Image: lo.ToPtr("cards/h2o.png")},
			{Term: "NaCl", Definition: "Salt"},
			{Term: "O2", Definition: "Oxygen", Image: lo.ToPtr("https://img.test/o2.png")},
		},
	}
	require.NoError(t, f.sets.Insert(context.Background(), f.set))

	f.assignment = &assignment.Assignment{
		ClassID:            f.class.ID.Hex(),
		SetID:              f.set.ID.Hex(),
		CreatorID:          "teacher-1",
		Title:              "Quiz 1",
		Mode:               consts.ModeTest,
		Deadline:           baseTime.Add(time.Hour),
		PerQuestionSeconds: 30,
		TotalQuestions:     3,
		CreateTime:         baseTime.Add(-time.Hour),
	}
	require.NoError(t, f.assignments.Insert(context.Background(), f.assignment))
	return f
}

func (f *assignmentFixture) submitReq(studentID string, score, total int64) *show.SubmitAssignmentReq {
	return &show.SubmitAssignmentReq{
		AssignmentId: f.assignment.ID.Hex(),
		StudentId:    studentID,
		Score:        score,
		Total:        total,
	}
}

func TestSubmitAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := authCtx(t, "student-1", consts.RoleStudent)

	req := f.submitReq("student-1", 2, 3)
	req.Details = []*show.Detail{
		{Term: "H2O", Expected: "Water", Given: "Water", Correct: true},
		{Term: "NaCl", Expected: "Salt", Given: "Salt", Correct: true},
		{Term: "O2", Expected: "Oxygen", TimedOut: true},
	}
	resp, err := f.svc.SubmitAssignment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, &show.SubmitAssignmentResp{Submitted: true, Score: 2, Total: 3}, resp)

	stored, err := f.submissions.FindByAssignmentAndStudent(ctx, f.assignment.ID.Hex(), "student-1")
	require.NoError(t, err)
	assert.Equal(t, baseTime, stored.StartTime)
	assert.Equal(t, baseTime, stored.SubmitTime)
	require.Len(t, stored.Details, 3)
	assert.True(t, stored.Details[2].TimedOut)
	assert.Equal(t, "Water", stored.Details[0].Given)

	// 班级创建者收到通知
	assert.Eventually(t, func() bool {
		return len(f.notifications.Snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	n := f.notifications.Snapshot()[0]
	assert.Equal(t, "teacher-1", n.Recipient)
	assert.Equal(t, consts.NotifySubmission, n.Kind)
	assert.Equal(t, "student-1", n.Payload["studentId"])
}

func TestSubmitAssignmentWithoutToken(t *testing.T) {
	f := newAssignmentFixture(t)

	resp, err := f.svc.SubmitAssignment(authCtx(t, "", ""), f.submitReq("student-1", 3, 3))
	require.NoError(t, err)
	assert.True(t, resp.Submitted)
}

func TestSubmitAssignmentDuplicate(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := authCtx(t, "student-1", consts.RoleStudent)

	_, err := f.svc.SubmitAssignment(ctx, f.submitReq("student-1", 1, 3))
	require.NoError(t, err)

	_, err = f.svc.SubmitAssignment(ctx, f.submitReq("student-1", 3, 3))
	assert.ErrorIs(t, err, consts.ErrAlreadySubmitted)

	got, err := f.svc.GetSubmission(ctx, &show.GetSubmissionReq{AssignmentId: f.assignment.ID.Hex(), StudentId: "student-1"})
	require.NoError(t, err)
	assert.True(t, got.Submitted)
	assert.Equal(t, int64(1), *got.Score)
	assert.Equal(t, 1, f.submissions.Count())
}

func TestSubmitAssignmentConcurrent(t *testing.T) {
	f := newAssignmentFixture(t)

	const attempts = 20
	ctxs := make([]context.Context, attempts)
	for i := range ctxs {
		ctxs[i] = authCtx(t, "student-1", consts.RoleStudent)
	}
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.SubmitAssignment(ctxs[i], f.submitReq("student-1", int64(i%4), 3))
		}(i)
	}
	wg.Wait()

	succeeded := lo.CountBy(errs, func(err error) bool { return err == nil })
	duplicates := lo.CountBy(errs, func(err error) bool { return errors.Is(err, consts.ErrAlreadySubmitted) })
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, duplicates)
	assert.Equal(t, 1, f.submissions.Count())
}

func TestSubmitAssignmentDeadline(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := authCtx(t, "student-1", consts.RoleStudent)

	t.Run("after deadline", func(t *testing.T) {
		freezeTime(t, f.assignment.Deadline.Add(time.Second))
		for _, score := range []int64{0, 3} {
			_, err := f.svc.SubmitAssignment(ctx, f.submitReq("student-1", score, 3))
			assert.ErrorIs(t, err, consts.ErrDeadlinePassed)
		}
		assert.Equal(t, 0, f.submissions.Count())
	})

	t.Run("exactly at deadline", func(t *testing.T) {
		freezeTime(t, f.assignment.Deadline)
		_, err := f.svc.SubmitAssignment(ctx, f.submitReq("student-1", 3, 3))
		assert.ErrorIs(t, err, consts.ErrDeadlinePassed)
	})

	assert.Equal(t, 400, consts.ErrDeadlinePassed.HTTPStatus())
}

func TestSubmitAssignmentNotFound(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := authCtx(t, "student-1", consts.RoleStudent)

	for _, id := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		req := f.submitReq("student-1", 1, 3)
		req.AssignmentId = id
		_, err := f.svc.SubmitAssignment(ctx, req)
		assert.ErrorIs(t, err, consts.ErrNotFound)
	}
}

func TestSubmitAssignmentInvalid(t *testing.T) {
	f := newAssignmentFixture(t)

	t.Run("score out of range", func(t *testing.T) {
		ctx := authCtx(t, "student-1", consts.RoleStudent)
		for _, c := range [][2]int64{{4, 3}, {-1, 3}, {0, -1}} {
			_, err := f.svc.SubmitAssignment(ctx, f.submitReq("student-1", c[0], c[1]))
			assert.ErrorIs(t, err, consts.ErrInvalidScore)
		}
	})

	t.Run("token for another student", func(t *testing.T) {
		ctx := authCtx(t, "student-2", consts.RoleStudent)
		_, err := f.svc.SubmitAssignment(ctx, f.submitReq("student-1", 1, 3))
		assert.ErrorIs(t, err, consts.ErrForbidden)
	})

	t.Run("storage failure", func(t *testing.T) {
		f.submissions.insertErr = errors.New("connection refused")
		defer func() { f.submissions.insertErr = nil }()
		_, err := f.svc.SubmitAssignment(authCtx(t, "student-1", consts.RoleStudent), f.submitReq("student-1", 1, 3))
		assert.ErrorIs(t, err, consts.ErrSubmit)
		assert.Equal(t, 500, consts.ErrSubmit.HTTPStatus())
	})

	assert.Equal(t, 0, f.submissions.Count())
}

func TestSubmitAssignmentNotifyFailure(t *testing.T) {
	f := newAssignmentFixture(t)
	f.notifications.err = errors.New("inbox unavailable")

	resp, err := f.svc.SubmitAssignment(authCtx(t, "student-1", consts.RoleStudent), f.submitReq("student-1", 2, 3))
	require.NoError(t, err)
	assert.True(t, resp.Submitted)
	assert.Equal(t, 1, f.submissions.Count())
}

func TestGetSubmission(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := authCtx(t, "student-1", consts.RoleStudent)
	req := &show.GetSubmissionReq{AssignmentId: f.assignment.ID.Hex(), StudentId: "student-1"}

	got, err := f.svc.GetSubmission(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, &show.GetSubmissionResp{Submitted: false}, got)

	_, err = f.svc.SubmitAssignment(ctx, f.submitReq("student-1", 2, 3))
	require.NoError(t, err)

	got, err = f.svc.GetSubmission(ctx, req)
	require.NoError(t, err)
	assert.True(t, got.Submitted)
	assert.Equal(t, int64(2), *got.Score)
	assert.Equal(t, int64(3), *got.Total)
	assert.Equal(t, baseTime, *got.SubmittedAt)
}

func TestGetAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	ctx := authCtx(t, "student-1", consts.RoleStudent)

	resp, err := f.svc.GetAssignment(ctx, &show.GetAssignmentReq{AssignmentId: f.assignment.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, f.assignment.ID.Hex(), resp.Assignment.Id)
	assert.Equal(t, f.class.ID.Hex(), resp.Assignment.ClassId)
	assert.Equal(t, int64(3), resp.Assignment.TotalQuestions)
	assert.Equal(t, int64(30), resp.Assignment.PerQuestionSeconds)
	assert.Equal(t, consts.ModeTest, resp.Assignment.Mode)
	assert.Equal(t, f.assignment.Deadline, resp.Assignment.Deadline)
	assert.Equal(t, baseTime, resp.ServerTime)

	require.Len(t, resp.Set.Cards, 3)
	assert.Equal(t, "https://cdn.test/cards/h2o.png?sig=1", *resp.Set.Cards[0].Image)
	assert.Nil(t, resp.Set.Cards[1].Image)
	assert.Equal(t, "https://img.test/o2.png", *resp.Set.Cards[2].Image)

	_, err = f.svc.GetAssignment(ctx, &show.GetAssignmentReq{AssignmentId: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, consts.ErrNotFound)
}

func TestCreateAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	teacher := authCtx(t, "teacher-1", consts.RoleTeacher)
	req := func() *show.CreateAssignmentReq {
		return &show.CreateAssignmentReq{
			ClassId:  f.class.ID.Hex(),
			SetId:    f.set.ID.Hex(),
			Mode:     consts.ModeLearn,
			Deadline: baseTime.Add(24 * time.Hour),
		}
	}

	resp, err := f.svc.CreateAssignment(teacher, req())
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalQuestions)
	created, err := f.assignments.FindOne(teacher, resp.AssignmentId)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", created.Title)
	assert.Equal(t, int64(consts.DefaultPerQuestionSeconds), created.PerQuestionSeconds)
	assert.Equal(t, int64(2), f.class.AssignmentCount)

	t.Run("snapshot survives set edits", func(t *testing.T) {
		f.set.Cards = append(f.set.Cards, &flashcard.Card{Term: "CO2", Definition: "Carbon dioxide"})
		got, err := f.svc.GetAssignment(teacher, &show.GetAssignmentReq{AssignmentId: resp.AssignmentId})
		require.NoError(t, err)
		assert.Equal(t, int64(3), got.Assignment.TotalQuestions)
		assert.Len(t, got.Set.Cards, 4)
	})

	t.Run("validation", func(t *testing.T) {
		r := req()
		r.Mode = "match"
		_, err := f.svc.CreateAssignment(teacher, r)
		assert.ErrorIs(t, err, consts.ErrInvalidMode)

		r = req()
		r.Deadline = baseTime.Add(-time.Minute)
		_, err = f.svc.CreateAssignment(teacher, r)
		assert.ErrorIs(t, err, consts.ErrInvalidDeadline)

		r = req()
		r.PerQuestionSeconds = lo.ToPtr(int64(0))
		_, err = f.svc.CreateAssignment(teacher, r)
		assert.ErrorIs(t, err, consts.ErrInvalidParams)

		empty := &flashcard.Set{OwnerID: "teacher-1", Title: "Empty"}
		require.NoError(t, f.sets.Insert(teacher, empty))
		r = req()
		r.SetId = empty.ID.Hex()
		_, err = f.svc.CreateAssignment(teacher, r)
		assert.ErrorIs(t, err, consts.ErrEmptySet)
	})

	t.Run("only the class owner", func(t *testing.T) {
		_, err := f.svc.CreateAssignment(authCtx(t, "student-1", consts.RoleStudent), req())
		assert.ErrorIs(t, err, consts.ErrNotClassOwner)

		_, err = f.svc.CreateAssignment(authCtx(t, "", ""), req())
		assert.ErrorIs(t, err, consts.ErrNotAuthentication)
	})
}

func TestListAssignmentsAndSubmissions(t *testing.T) {
	f := newAssignmentFixture(t)
	teacher := authCtx(t, "teacher-1", consts.RoleTeacher)
	student := authCtx(t, "student-1", consts.RoleStudent)

	list, err := f.svc.ListAssignments(student, &show.ListAssignmentsReq{ClassId: f.class.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, "Quiz 1", list.Assignments[0].Title)

	_, err = f.svc.ListAssignments(authCtx(t, "outsider", consts.RoleStudent), &show.ListAssignmentsReq{ClassId: f.class.ID.Hex()})
	assert.ErrorIs(t, err, consts.ErrNotClassMember)

	_, err = f.svc.SubmitAssignment(student, f.submitReq("student-1", 3, 3))
	require.NoError(t, err)

	subs, err := f.svc.ListSubmissions(teacher, &show.ListSubmissionsReq{AssignmentId: f.assignment.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), subs.Total)
	assert.Equal(t, int64(1), subs.Pending)
	assert.Equal(t, "student-1", subs.Submissions[0].StudentId)
	assert.Equal(t, int64(3), subs.Submissions[0].Score)

	_, err = f.svc.ListSubmissions(student, &show.ListSubmissionsReq{AssignmentId: f.assignment.ID.Hex()})
	assert.ErrorIs(t, err, consts.ErrNotClassOwner)
}

func TestDeleteAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	teacher := authCtx(t, "teacher-1", consts.RoleTeacher)
	id := f.assignment.ID.Hex()

	_, err := f.svc.DeleteAssignment(authCtx(t, "student-1", consts.RoleStudent), &show.DeleteAssignmentReq{AssignmentId: id})
	assert.ErrorIs(t, err, consts.ErrNotClassOwner)

	_, err = f.svc.DeleteAssignment(teacher, &show.DeleteAssignmentReq{AssignmentId: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, consts.ErrNotFound)

	resp, err := f.svc.DeleteAssignment(teacher, &show.DeleteAssignmentReq{AssignmentId: id})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Msg)
	assert.Equal(t, int64(0), f.class.AssignmentCount)

	_, err = f.svc.GetAssignment(teacher, &show.GetAssignmentReq{AssignmentId: id})
	assert.ErrorIs(t, err, consts.ErrNotFound)
}

func TestDeleteAssignmentWithSubmissions(t *testing.T) {
	f := newAssignmentFixture(t)
	_, err := f.svc.SubmitAssignment(authCtx(t, "student-1", consts.RoleStudent), f.submitReq("student-1", 1, 3))
	require.NoError(t, err)

	_, err = f.svc.DeleteAssignment(authCtx(t, "teacher-1", consts.RoleTeacher), &show.DeleteAssignmentReq{AssignmentId: f.assignment.ID.Hex()})
	assert.ErrorIs(t, err, consts.ErrHasSubmissions)
}
