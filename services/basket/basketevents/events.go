package basketevents

const (
	TopicName                  = "basket"
	basketInitializedName      = TopicName + ".initialized"
	dishAddedName              = TopicName + ".dish.added"
	dishRemovedName            = TopicName + ".dish.removed"
	deliveryAddressUpdatedName = TopicName + ".deliveryaddress.updated"
)

type BasketInitialized struct {
	BasketUID string
}

func (e BasketInitialized) GetEventTypeName() string {
	return basketInitializedName
}

func (e BasketInitialized) GetAggregateName() string {
	return e.BasketUID
}

type DishAdded struct {
	BasketUID  string
	DishUID    string
	Resolved   bool
	TotalPrice int
	ItemCount  int
}

func (e DishAdded) GetEventTypeName() string {
	return dishAddedName
}

func (e DishAdded) GetAggregateName() string {
	return e.BasketUID
}

type DishRemoved struct {
	BasketUID  string
	DishUID    string
	Resolved   bool
	TotalPrice int
	ItemCount  int
}

func (e DishRemoved) GetEventTypeName() string {
	return dishRemovedName
}

func (e DishRemoved) GetAggregateName() string {
	return e.BasketUID
}

type DeliveryAddressUpdated struct {
	BasketUID       string
	DeliveryAddress string
}

func (e DeliveryAddressUpdated) GetEventTypeName() string {
	return deliveryAddressUpdatedName
}

func (e DeliveryAddressUpdated) GetAggregateName() string {
	return e.BasketUID
}
