package lifecycle

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Axeldarren/ITList-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimer(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	logEntry, err := StartTimer(db, admin, &task.ID, nil)
	require.NoError(t, err)
	assert.True(t, logEntry.Running())
	assert.Equal(t, &task.ID, logEntry.TaskID)
	assert.Nil(t, logEntry.MaintenanceTaskID)
}

func TestStartTimerConflict(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	taskA := seedTask(t, db, project.ID, 1, models.TaskInProgress)
	taskB := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	_, err := StartTimer(db, admin, &taskA.ID, nil)
	require.NoError(t, err)

	// второй таймер того же пользователя — конфликт, даже на другой задаче
	_, err = StartTimer(db, admin, &taskB.ID, nil)
	require.ErrorIs(t, err, ErrConflict)

	// другой пользователь стартует свободно
	other := seedMember(t, db, project.ID, "other")
	require.NotEqual(t, admin.UserID, other.UserID)
	_, err = StartTimer(db, other, &taskB.ID, nil)
	require.NoError(t, err)
}

func TestStartTimerOutsiderSeesNotFound(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusStart)
	task := seedTask(t, db, project.ID, 1, models.TaskToDo)

	// пользователь вне команд проекта задачу не видит и таймер не запустит
	outsider := seedUser(t, db, "outsider")
	_, err := StartTimer(db, Actor{UserID: outsider.ID}, &task.ID, nil)
	require.ErrorIs(t, err, ErrNotFound)

	// проект остался в Start, побочного перехода не было
	require.Equal(t, models.StatusStart, reload(t, db, project.ID).Status)
}

func TestStartTimerConflictAcrossMaintenance(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	mt := models.MaintenanceTask{Name: "patch prod", Status: "Open"}
	require.NoError(t, db.Create(&mt).Error)

	_, err := StartTimer(db, admin, nil, &mt.ID)
	require.NoError(t, err)

	// взаимное исключение глобально для пользователя, не по типу задачи
	_, err = StartTimer(db, admin, &task.ID, nil)
	require.ErrorIs(t, err, ErrConflict)
}

func TestStartTimerConcurrent(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = StartTimer(db, admin, &task.ID, nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrConflict)
		}
	}
	assert.Equal(t, 1, succeeded)

	var running int64
	require.NoError(t, db.Model(&models.TimeLog{}).
		Where("user_id = ? AND end_time IS NULL", admin.UserID).
		Count(&running).Error)
	assert.EqualValues(t, 1, running)
}

func TestStartTimerRequiresExactlyOneTarget(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)
	mt := models.MaintenanceTask{Name: "m", Status: "Open"}
	require.NoError(t, db.Create(&mt).Error)

	_, err := StartTimer(db, admin, nil, nil)
	require.ErrorIs(t, err, ErrValidation)

	_, err = StartTimer(db, admin, &task.ID, &mt.ID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestStartTimerMovesProjectOffStart(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusStart)
	task := seedTask(t, db, project.ID, 1, models.TaskToDo)

	_, err := StartTimer(db, admin, &task.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusOnProgress, reload(t, db, project.ID).Status)
	assert.EqualValues(t, 1, historyCount(t, db, project.ID))
}

func TestStopTimer(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	started, err := StartTimer(db, admin, &task.ID, nil)
	require.NoError(t, err)

	stopped, stoppedTask, err := StopTimer(db, started.ID, admin.UserID, "fixed the flaky migration")
	require.NoError(t, err)
	require.NotNil(t, stoppedTask)
	assert.Equal(t, task.ID, stoppedTask.ID)
	assert.False(t, stopped.Running())
	assert.GreaterOrEqual(t, stopped.DurationSeconds, int64(0))
	require.NotNil(t, stopped.CommentID)

	// комментарий начинается с форматированной длительности
	var comment models.Comment
	require.NoError(t, db.First(&comment, *stopped.CommentID).Error)
	assert.Equal(t,
		fmt.Sprintf("[%s] fixed the flaky migration", FormatDuration(stopped.DurationSeconds)),
		comment.Text)
	assert.Equal(t, &task.ID, comment.TaskID)

	// запись журнала действий создана в той же транзакции
	var activity models.Activity
	require.NoError(t, db.Where("task_id = ? AND type = ?", task.ID, models.ActivityComment).
		First(&activity).Error)
	assert.Contains(t, activity.Details, "commented on task")
}

func TestStopTimerTwice(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	started, err := StartTimer(db, admin, &task.ID, nil)
	require.NoError(t, err)

	first, _, err := StopTimer(db, started.ID, admin.UserID, "first stop")
	require.NoError(t, err)

	_, _, err = StopTimer(db, started.ID, admin.UserID, "second stop")
	require.ErrorIs(t, err, ErrValidation)

	// длительность и комментарий первого стопа не пострадали
	var after models.TimeLog
	require.NoError(t, db.First(&after, started.ID).Error)
	assert.Equal(t, first.DurationSeconds, after.DurationSeconds)
	assert.Equal(t, first.CommentID, after.CommentID)
}

func TestStopTimerOwnership(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	started, err := StartTimer(db, admin, &task.ID, nil)
	require.NoError(t, err)

	other := seedUser(t, db, "other")
	_, _, err = StopTimer(db, started.ID, other.ID, "not mine")
	require.ErrorIs(t, err, ErrForbidden)

	_, _, err = StopTimer(db, 99999, admin.UserID, "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStopTimerRequiresDescription(t *testing.T) {
	db := newTestDB(t)
	project := seedProject(t, db, models.StatusOnProgress)
	task := seedTask(t, db, project.ID, 1, models.TaskInProgress)

	started, err := StartTimer(db, admin, &task.ID, nil)
	require.NoError(t, err)

	_, _, err = StopTimer(db, started.ID, admin.UserID, "   ")
	require.ErrorIs(t, err, ErrValidation)

	// таймер всё ещё идёт
	var after models.TimeLog
	require.NoError(t, db.First(&after, started.ID).Error)
	assert.True(t, after.Running())
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{83, "1m"},
		{3600, "1h 0m"},
		{4980, "1h 23m"},
		{7265, "2h 1m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.seconds), "seconds=%d", tc.seconds)
	}
}
