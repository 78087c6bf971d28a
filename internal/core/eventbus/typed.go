package eventbus

// Typed Publish/Subscribe pairs, one per event in events.go.

func (bus *EventBus) PublishConfigReloaded(p ConfigReloadedPayload) {
	bus.send(EventConfigReloaded, p)
}

func (bus *EventBus) SubscribeConfigReloaded(fn func(ConfigReloadedPayload)) {
	subscribe(bus, EventConfigReloaded, fn)
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	subscribe(bus, EventNotificationPublished, fn)
}

func (bus *EventBus) PublishReportExported(p ReportExportedPayload) {
	bus.send(EventReportExported, p)
}

func (bus *EventBus) SubscribeReportExported(fn func(ReportExportedPayload)) {
	subscribe(bus, EventReportExported, fn)
}

func (bus *EventBus) PublishSimulationChanged(p SimulationChangedPayload) {
	bus.send(EventSimulationChanged, p)
}

func (bus *EventBus) SubscribeSimulationChanged(fn func(SimulationChangedPayload)) {
	subscribe(bus, EventSimulationChanged, fn)
}

func (bus *EventBus) PublishTaskAwaitingVerification(p TaskAwaitingVerificationPayload) {
	bus.send(EventTaskAwaitingVerification, p)
}

func (bus *EventBus) SubscribeTaskAwaitingVerification(fn func(TaskAwaitingVerificationPayload)) {
	subscribe(bus, EventTaskAwaitingVerification, fn)
}

func (bus *EventBus) PublishTaskCreated(p TaskCreatedPayload) {
	bus.send(EventTaskCreated, p)
}

func (bus *EventBus) SubscribeTaskCreated(fn func(TaskCreatedPayload)) {
	subscribe(bus, EventTaskCreated, fn)
}

func (bus *EventBus) PublishTaskFailed(p TaskFailedPayload) {
	bus.send(EventTaskFailed, p)
}

func (bus *EventBus) SubscribeTaskFailed(fn func(TaskFailedPayload)) {
	subscribe(bus, EventTaskFailed, fn)
}

func (bus *EventBus) PublishTaskRemoved(p TaskRemovedPayload) {
	bus.send(EventTaskRemoved, p)
}

func (bus *EventBus) SubscribeTaskRemoved(fn func(TaskRemovedPayload)) {
	subscribe(bus, EventTaskRemoved, fn)
}

func (bus *EventBus) PublishTaskStatusChanged(p TaskStatusChangedPayload) {
	bus.send(EventTaskStatusChanged, p)
}

func (bus *EventBus) SubscribeTaskStatusChanged(fn func(TaskStatusChangedPayload)) {
	subscribe(bus, EventTaskStatusChanged, fn)
}

func (bus *EventBus) PublishTaskVerified(p TaskVerifiedPayload) {
	bus.send(EventTaskVerified, p)
}

func (bus *EventBus) SubscribeTaskVerified(fn func(TaskVerifiedPayload)) {
	subscribe(bus, EventTaskVerified, fn)
}
