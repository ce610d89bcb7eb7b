package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mediflow-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatientDirectory struct {
	patients map[uuid.UUID]*models.Patient
}

func (f fakePatientDirectory) PatientByID(id uuid.UUID) (*models.Patient, error) {
	if patient, ok := f.patients[id]; ok {
		return patient, nil
	}
	return nil, errors.New("patient not found")
}

type fakeDoctorDirectory struct {
	doctors map[uuid.UUID]*models.Doctor
}

func (f fakeDoctorDirectory) DoctorByID(id uuid.UUID) (*models.Doctor, error) {
	if doctor, ok := f.doctors[id]; ok {
		return doctor, nil
	}
	return nil, errors.New("doctor not found")
}

type sentMessage struct {
	address string
	msg     Message
}

// recordingNotifier captures sends and optionally fails every one.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, address string, msg Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{address: address, msg: msg})
	return nil
}

func (n *recordingNotifier) messages() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]sentMessage, len(n.sent))
	copy(out, n.sent)
	return out
}

// recordingLogStore captures delivery-attempt rows in memory.
type recordingLogStore struct {
	mu      sync.Mutex
	entries []models.NotificationLog
}

func (r *recordingLogStore) Record(entry models.NotificationLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *recordingLogStore) all() []models.NotificationLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.NotificationLog, len(r.entries))
	copy(out, r.entries)
	return out
}

type testFixture struct {
	service *NotificationService
	patient *models.Patient
	doctor  *models.Doctor
	email   *recordingNotifier
	sms     *recordingNotifier
	logs    *recordingLogStore
}

func newTestFixture() *testFixture {
	patient := &models.Patient{
		ID:    uuid.New(),
		Name:  "Ann Carter",
		Email: "ann@example.com",
		Phone: "+15550100",
	}
	doctor := &models.Doctor{
		ID:    uuid.New(),
		Name:  "Gregory Lane",
		Email: "glane@example.com",
		Phone: "+15550101",
	}

	email := &recordingNotifier{}
	sms := &recordingNotifier{}
	logs := &recordingLogStore{}

	service := &NotificationService{
		patients:  fakePatientDirectory{patients: map[uuid.UUID]*models.Patient{patient.ID: patient}},
		doctors:   fakeDoctorDirectory{doctors: map[uuid.UUID]*models.Doctor{doctor.ID: doctor}},
		templates: NewTemplateStore(),
		notifiers: map[Channel]Notifier{ChannelEmail: email, ChannelSMS: sms},
		logs:      logs,
		now:       time.Now,
		reminders: make(map[string]*scheduledReminder),
	}

	return &testFixture{service: service, patient: patient, doctor: doctor, email: email, sms: sms, logs: logs}
}

func (f *testFixture) appointment(date time.Time, clock string, settings models.ReminderSettings) models.Appointment {
	return models.Appointment{
		ID:               uuid.New(),
		PatientID:        f.patient.ID,
		DoctorID:         f.doctor.ID,
		Date:             date,
		Time:             clock,
		Reason:           "Annual checkup",
		Status:           "scheduled",
		ReminderSettings: settings,
	}
}

func TestScheduleRemindersArmsConfiguredOffsets(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders:    []string{"24h", "1h"},
		DoctorReminders:     []string{"2h"},
		NotificationMethods: []string{"email", "sms"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	keys := f.service.ArmedReminderKeys()
	assert.Len(t, keys, 3)
	assert.Contains(t, keys, reminderKey(appointment.ID, RecipientPatient, "24h"))
	assert.Contains(t, keys, reminderKey(appointment.ID, RecipientPatient, "1h"))
	assert.Contains(t, keys, reminderKey(appointment.ID, RecipientDoctor, "2h"))
}

func TestScheduleRemindersFireTime(t *testing.T) {
	f := newTestFixture()
	// Scheduling happens at 2025-03-09 09:00 for an appointment the next
	// morning; the 24h reminder must fire at 2025-03-09 10:00.
	schedulingTime := time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return schedulingTime }

	appointment := f.appointment(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", models.ReminderSettings{
		PatientReminders: []string{"24h"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	keys := f.service.ArmedReminderKeys()
	require.Len(t, keys, 1)

	reminder := f.service.reminders[keys[0]]
	assert.Equal(t, time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC), reminder.fireAt)
	assert.Equal(t, appointment.ID, reminder.appointmentID)
	assert.Equal(t, RecipientPatient, reminder.recipientType)
}

func TestScheduleRemindersIdempotent(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "09:30", models.ReminderSettings{
		PatientReminders: []string{"24h", "6h"},
		DoctorReminders:  []string{"24h"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))
	first := f.service.ArmedReminderKeys()

	require.True(t, f.service.ScheduleReminders(appointment))
	second := f.service.ArmedReminderKeys()

	assert.Equal(t, first, second)
	assert.Len(t, second, 3)
}

func TestScheduleRemindersSkipsPastOffsets(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, -1), "10:00", models.ReminderSettings{
		PatientReminders: []string{"24h", "12h", "6h", "2h", "1h", "30m"},
		DoctorReminders:  []string{"24h", "30m"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))
	assert.Empty(t, f.service.ArmedReminderKeys())
}

func TestScheduleRemindersSkipsUnknownOffsets(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders: []string{"48h", "1h", "soon"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	keys := f.service.ArmedReminderKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, reminderKey(appointment.ID, RecipientPatient, "1h"), keys[0])
}

func TestScheduleRemindersLookupFailure(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders: []string{"24h"},
	})
	appointment.PatientID = uuid.New() // not in the directory

	assert.False(t, f.service.ScheduleReminders(appointment))
	assert.Empty(t, f.service.ArmedReminderKeys())
}

func TestDoctorRemindersAlwaysEmail(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		DoctorReminders:     []string{"2h"},
		NotificationMethods: []string{"sms"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	reminder := f.service.reminders[reminderKey(appointment.ID, RecipientDoctor, "2h")]
	require.NotNil(t, reminder)
	assert.Equal(t, []Channel{ChannelEmail}, reminder.methods)
}

func TestEmptyNotificationMethodsArmWithoutChannels(t *testing.T) {
	f := newTestFixture()

	// An explicit empty list is a configuration, not an omission; no email
	// fallback applies.
	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders:    []string{"24h"},
		NotificationMethods: []string{},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	reminder := f.service.reminders[reminderKey(appointment.ID, RecipientPatient, "24h")]
	require.NotNil(t, reminder)
	assert.Empty(t, reminder.methods)
}

func TestUnknownNotificationMethodsAreDropped(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders:    []string{"24h"},
		NotificationMethods: []string{"whatsapp"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	reminder := f.service.reminders[reminderKey(appointment.ID, RecipientPatient, "24h")]
	require.NotNil(t, reminder)
	assert.Empty(t, reminder.methods)

	// Known methods survive the filter alongside unknown ones.
	mixed := f.appointment(time.Now().AddDate(0, 0, 7), "11:00", models.ReminderSettings{
		PatientReminders:    []string{"24h"},
		NotificationMethods: []string{"whatsapp", "sms"},
	})

	require.True(t, f.service.ScheduleReminders(mixed))

	reminder = f.service.reminders[reminderKey(mixed.ID, RecipientPatient, "24h")]
	require.NotNil(t, reminder)
	assert.Equal(t, []Channel{ChannelSMS}, reminder.methods)
}

func TestPatientRemindersDefaultToEmail(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders: []string{"12h"},
	})

	require.True(t, f.service.ScheduleReminders(appointment))

	reminder := f.service.reminders[reminderKey(appointment.ID, RecipientPatient, "12h")]
	require.NotNil(t, reminder)
	assert.Equal(t, []Channel{ChannelEmail}, reminder.methods)
}

func TestCancelReminders(t *testing.T) {
	f := newTestFixture()

	first := f.appointment(time.Now().AddDate(0, 0, 7), "10:00", models.ReminderSettings{
		PatientReminders: []string{"24h", "1h"},
		DoctorReminders:  []string{"24h"},
	})
	second := f.appointment(time.Now().AddDate(0, 0, 8), "11:00", models.ReminderSettings{
		PatientReminders: []string{"6h"},
	})

	require.True(t, f.service.ScheduleReminders(first))
	require.True(t, f.service.ScheduleReminders(second))
	require.Len(t, f.service.ArmedReminderKeys(), 4)

	assert.True(t, f.service.CancelReminders(first.ID))

	keys := f.service.ArmedReminderKeys()
	require.Len(t, keys, 1)
	assert.Equal(t, reminderKey(second.ID, RecipientPatient, "6h"), keys[0])
}

func TestCancelRemindersNoop(t *testing.T) {
	f := newTestFixture()

	assert.True(t, f.service.CancelReminders(uuid.New()))
	assert.Empty(t, f.service.ArmedReminderKeys())
}

func TestDispatchChannelIsolation(t *testing.T) {
	f := newTestFixture()
	f.email.err = errors.New("smtp gateway down")

	appointment := f.appointment(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", models.ReminderSettings{})

	f.service.fire("test-key", appointment, RecipientPatient, *f.patient, *f.doctor,
		[]Channel{ChannelEmail, ChannelSMS})

	// Email failed but SMS must still have gone out.
	assert.Empty(t, f.email.messages())
	sms := f.sms.messages()
	require.Len(t, sms, 1)
	assert.Equal(t, f.patient.Phone, sms[0].address)
	assert.Contains(t, sms[0].msg.Body, "Gregory Lane")
	assert.Contains(t, sms[0].msg.Body, "10:00")
}

func TestDispatchSkipsMissingAddress(t *testing.T) {
	f := newTestFixture()
	f.patient.Phone = ""

	appointment := f.appointment(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", models.ReminderSettings{})

	f.service.fire("test-key", appointment, RecipientPatient, *f.patient, *f.doctor,
		[]Channel{ChannelEmail, ChannelSMS})

	assert.Empty(t, f.sms.messages())
	email := f.email.messages()
	require.Len(t, email, 1)
	assert.Equal(t, f.patient.Email, email[0].address)
}

func TestDispatchRendersTemplateVariables(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "14:30", models.ReminderSettings{})
	appointment.Reason = "Blood test"

	f.service.fire("test-key", appointment, RecipientDoctor, *f.patient, *f.doctor,
		[]Channel{ChannelEmail})

	email := f.email.messages()
	require.Len(t, email, 1)
	assert.Equal(t, f.doctor.Email, email[0].address)
	assert.Equal(t, "Patient Appointment Reminder - Ann Carter", email[0].msg.Subject)
	assert.Contains(t, email[0].msg.Body, "Ann Carter")
	assert.Contains(t, email[0].msg.Body, "March 10, 2025")
	assert.Contains(t, email[0].msg.Body, "14:30")
	assert.Contains(t, email[0].msg.Body, "Blood test")
	assert.Contains(t, email[0].msg.Body, f.patient.Phone)
}

func TestDispatchLogsOutcomes(t *testing.T) {
	f := newTestFixture()
	f.patient.Phone = ""
	f.email.err = errors.New("rejected")

	appointment := f.appointment(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", models.ReminderSettings{})

	f.service.fire("test-key", appointment, RecipientPatient, *f.patient, *f.doctor,
		[]Channel{ChannelEmail, ChannelSMS})

	entries := f.logs.all()
	require.Len(t, entries, 2)

	byChannel := map[string]models.NotificationLog{}
	for _, entry := range entries {
		byChannel[entry.Channel] = entry
	}

	assert.Equal(t, "failed", byChannel["email"].Status)
	assert.Equal(t, "rejected", byChannel["email"].ErrorMessage)
	assert.Equal(t, f.patient.Email, byChannel["email"].Address)

	// The phoneless patient yields a skipped row, not a silent drop.
	assert.Equal(t, "skipped", byChannel["sms"].Status)
	assert.Empty(t, byChannel["sms"].Address)
}

func TestDispatchLogsSentDeliveries(t *testing.T) {
	f := newTestFixture()

	appointment := f.appointment(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "10:00", models.ReminderSettings{})

	f.service.fire("test-key", appointment, RecipientDoctor, *f.patient, *f.doctor,
		[]Channel{ChannelEmail})

	entries := f.logs.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "sent", entries[0].Status)
	assert.Equal(t, f.doctor.Email, entries[0].Address)
	assert.Equal(t, string(RecipientDoctor), entries[0].RecipientType)
	assert.Empty(t, entries[0].ErrorMessage)
}

func TestReminderFiresAndUnregisters(t *testing.T) {
	f := newTestFixture()

	// Pin the scheduler clock 100ms before the computed fire time so the
	// 30m reminder triggers almost immediately on the real timer.
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return base.Add(-100 * time.Millisecond) }

	appointment := f.appointment(base, "09:30", models.ReminderSettings{
		PatientReminders:    []string{"30m"},
		NotificationMethods: []string{"sms"},
	})
	require.True(t, f.service.ScheduleReminders(appointment))
	require.Len(t, f.service.ArmedReminderKeys(), 1)

	assert.Eventually(t, func() bool {
		return len(f.sms.messages()) == 1 && len(f.service.ArmedReminderKeys()) == 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestTestNotification(t *testing.T) {
	f := newTestFixture()

	ok := f.service.TestNotification(RecipientPatient, ChannelSMS, "+15550199", map[string]string{
		"doctorName": "Gregory Lane",
		"date":       "March 10, 2025",
		"time":       "10:00",
		"reason":     "Checkup",
	})
	require.True(t, ok)

	sms := f.sms.messages()
	require.Len(t, sms, 1)
	assert.Equal(t, "+15550199", sms[0].address)
	assert.Contains(t, sms[0].msg.Body, "Gregory Lane")

	// Unknown slot fails without sending.
	assert.False(t, f.service.TestNotification("nurse", ChannelSMS, "+15550199", nil))
	assert.Len(t, f.sms.messages(), 1)
}

func TestTestNotificationSendFailure(t *testing.T) {
	f := newTestFixture()
	f.email.err = errors.New("rejected")

	assert.False(t, f.service.TestNotification(RecipientPatient, ChannelEmail, "ann@example.com", nil))
}
