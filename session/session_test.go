package session_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/decodahealth/patient-record/billing"
	"github.com/decodahealth/patient-record/record"
	recordTest "github.com/decodahealth/patient-record/record/test"
	"github.com/decodahealth/patient-record/session"
	sessionTest "github.com/decodahealth/patient-record/session/test"
	"github.com/decodahealth/patient-record/view"
)

var _ = Describe("Manager", func() {
	var ctrl *gomock.Controller
	var loader *sessionTest.MockLoader
	var sink *sessionTest.MockSink
	var manager session.Manager
	var actor record.PersonRef
	var rec record.PatientRecord
	var patientId string
	var ctx context.Context

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		loader = sessionTest.NewMockLoader(ctrl)
		sink = sessionTest.NewMockSink(ctrl)
		actor = recordTest.RandomPersonRef()

		var err error
		manager, err = session.NewManager(loader, sink, actor, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())

		rec = recordTest.RandomRecord(time.Now())
		patientId = rec.Patient.Id
		ctx = context.Background()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("Load", func() {
		It("fetches the aggregate once and reuses it", func() {
			loader.EXPECT().Get(gomock.Any(), patientId).Return(rec, nil).Times(1)

			first, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			second, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())

			Expect(second.Record).To(Equal(first.Record))
		})

		It("computes the derived view state", func() {
			loader.EXPECT().Get(gomock.Any(), patientId).Return(rec, nil)

			snapshot, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.View).To(HaveKey(view.SectionBilling))
			Expect(snapshot.View[view.SectionBilling].ShouldAutoExpand).To(BeTrue())
		})

		It("settles due scheduled payments and persists the result", func() {
			rec.Charges = []record.Charge{recordTest.RandomScheduledCharge(time.Now())}
			loader.EXPECT().Get(gomock.Any(), patientId).Return(rec, nil)
			sink.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

			snapshot, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.Record.Charges[0].TotalOutstanding).To(BeZero())
			Expect(snapshot.Record.LastProcessed).ToNot(BeNil())
		})

		It("propagates loader failures", func() {
			loader.EXPECT().Get(gomock.Any(), patientId).Return(record.PatientRecord{}, context.DeadlineExceeded)

			_, err := manager.Load(ctx, patientId)
			Expect(err).To(MatchError(context.DeadlineExceeded))
		})
	})

	Describe("commands", func() {
		BeforeEach(func() {
			loader.EXPECT().Get(gomock.Any(), patientId).Return(rec, nil)
		})

		It("persists the updated aggregate", func() {
			var persisted record.PatientRecord
			sink.EXPECT().Upsert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, updated record.PatientRecord) error {
					persisted = updated
					return nil
				})

			snapshot, err := manager.ChargeNow(ctx, patientId, billing.ChargeNowInput{
				ChargeIds: []string{rec.Charges[0].Id},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(persisted).To(Equal(snapshot.Record))
			Expect(snapshot.Record.Charges[0].Status).To(Equal(record.ChargeStatusPaid))
		})

		It("attaches the configured actor to synthesized memos", func() {
			sink.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

			snapshot, err := manager.AddMemo(ctx, patientId, "call the pharmacy")
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.Record.Memos[0].Creator).To(Equal(actor))
		})

		It("keeps the session unchanged when a command is rejected", func() {
			_, err := manager.ChargeNow(ctx, patientId, billing.ChargeNowInput{
				ChargeIds: []string{"ch_missing"},
			})
			Expect(err).To(MatchError(billing.ErrInvalidSelection))

			snapshot, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.Record.Charges[0].Payments).To(BeEmpty())
		})

		It("does not persist when the sink fails", func() {
			sink.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

			_, err := manager.AddMemo(ctx, patientId, "note")
			Expect(err).To(MatchError(context.DeadlineExceeded))

			snapshot, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.Record.Memos).To(BeEmpty())
		})
	})

	Describe("overlay operations", func() {
		BeforeEach(func() {
			rec.Alerts = []record.Alert{
				{Id: "alrt_1", Type: record.AlertTypeMessageReceived, ActionRequired: true},
			}
			loader.EXPECT().Get(gomock.Any(), patientId).Return(rec, nil)
		})

		It("dismisses alerts without touching the sink", func() {
			snapshot, err := manager.DismissAlert(ctx, patientId, "alrt_1")
			Expect(err).ToNot(HaveOccurred())

			Expect(snapshot.ActiveAlerts).To(BeEmpty())
			Expect(snapshot.Record.Alerts).To(HaveLen(1))
		})

		It("dismisses idempotently", func() {
			_, err := manager.DismissAlert(ctx, patientId, "alrt_1")
			Expect(err).ToNot(HaveOccurred())
			snapshot, err := manager.DismissAlert(ctx, patientId, "alrt_1")
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.ActiveAlerts).To(BeEmpty())
		})

		It("pins a toggled section", func() {
			snapshot, err := manager.ToggleSection(ctx, patientId, view.SectionBilling)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.View[view.SectionBilling].Expanded).To(BeFalse())
		})

		It("clears the summary notification once viewed", func() {
			snapshot, err := manager.MarkSummaryViewed(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.View[view.SectionAISummary].HasNotification).To(BeFalse())
		})
	})

	Describe("Refresh", func() {
		It("settles payments that became due after load", func() {
			loader.EXPECT().Get(gomock.Any(), patientId).Return(rec, nil)

			first, err := manager.Load(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(first.Record.LastProcessed).To(BeNil())

			// schedule a due payment through the regular command path
			sink.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
			_, err = manager.SchedulePayment(ctx, patientId, billing.SchedulePaymentInput{
				ChargeIds:      []string{rec.Charges[0].Id},
				Date:           time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
				Time:           "00:00",
				AutoPayEnabled: true,
			})
			Expect(err).ToNot(HaveOccurred())

			snapshot, err := manager.Refresh(ctx, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(snapshot.Record.Charges[0].TotalOutstanding).To(BeZero())
			Expect(snapshot.Record.LastProcessed).ToNot(BeNil())
		})
	})
})
