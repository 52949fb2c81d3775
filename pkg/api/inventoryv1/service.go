package inventoryv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "sellergenix.inventory.v1.ReorderService"

const (
	ReorderService_PreviewReorderPlan_FullMethodName    = "/" + ServiceName + "/PreviewReorderPlan"
	ReorderService_GetReorderPlan_FullMethodName        = "/" + ServiceName + "/GetReorderPlan"
	ReorderService_ListReorderPlans_FullMethodName      = "/" + ServiceName + "/ListReorderPlans"
	ReorderService_UpdateReorderSettings_FullMethodName = "/" + ServiceName + "/UpdateReorderSettings"
	ReorderService_AdjustStock_FullMethodName           = "/" + ServiceName + "/AdjustStock"
	ReorderService_ListStockMovements_FullMethodName    = "/" + ServiceName + "/ListStockMovements"
)

type ReorderServiceServer interface {
	PreviewReorderPlan(context.Context, *PreviewReorderPlanRequest) (*PreviewReorderPlanResponse, error)
	GetReorderPlan(context.Context, *GetReorderPlanRequest) (*GetReorderPlanResponse, error)
	ListReorderPlans(context.Context, *ListReorderPlansRequest) (*ListReorderPlansResponse, error)
	UpdateReorderSettings(context.Context, *UpdateReorderSettingsRequest) (*UpdateReorderSettingsResponse, error)
	AdjustStock(context.Context, *AdjustStockRequest) (*AdjustStockResponse, error)
	ListStockMovements(context.Context, *ListStockMovementsRequest) (*ListStockMovementsResponse, error)
}

// UnimplementedReorderServiceServer can be embedded to keep servers
// compiling as methods are added.
type UnimplementedReorderServiceServer struct{}

func (UnimplementedReorderServiceServer) PreviewReorderPlan(context.Context, *PreviewReorderPlanRequest) (*PreviewReorderPlanResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PreviewReorderPlan not implemented")
}

func (UnimplementedReorderServiceServer) GetReorderPlan(context.Context, *GetReorderPlanRequest) (*GetReorderPlanResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetReorderPlan not implemented")
}

func (UnimplementedReorderServiceServer) ListReorderPlans(context.Context, *ListReorderPlansRequest) (*ListReorderPlansResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListReorderPlans not implemented")
}

func (UnimplementedReorderServiceServer) UpdateReorderSettings(context.Context, *UpdateReorderSettingsRequest) (*UpdateReorderSettingsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateReorderSettings not implemented")
}

func (UnimplementedReorderServiceServer) AdjustStock(context.Context, *AdjustStockRequest) (*AdjustStockResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdjustStock not implemented")
}

func (UnimplementedReorderServiceServer) ListStockMovements(context.Context, *ListStockMovementsRequest) (*ListStockMovementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListStockMovements not implemented")
}

func RegisterReorderServiceServer(s grpc.ServiceRegistrar, srv ReorderServiceServer) {
	s.RegisterService(&ReorderService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to a grpc method handler.
func unaryHandler[Req any, Resp any](fullMethod string, call func(ReorderServiceServer, context.Context, *Req) (*Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ReorderServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ReorderServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ReorderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReorderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PreviewReorderPlan",
			Handler:    unaryHandler(ReorderService_PreviewReorderPlan_FullMethodName, ReorderServiceServer.PreviewReorderPlan),
		},
		{
			MethodName: "GetReorderPlan",
			Handler:    unaryHandler(ReorderService_GetReorderPlan_FullMethodName, ReorderServiceServer.GetReorderPlan),
		},
		{
			MethodName: "ListReorderPlans",
			Handler:    unaryHandler(ReorderService_ListReorderPlans_FullMethodName, ReorderServiceServer.ListReorderPlans),
		},
		{
			MethodName: "UpdateReorderSettings",
			Handler:    unaryHandler(ReorderService_UpdateReorderSettings_FullMethodName, ReorderServiceServer.UpdateReorderSettings),
		},
		{
			MethodName: "AdjustStock",
			Handler:    unaryHandler(ReorderService_AdjustStock_FullMethodName, ReorderServiceServer.AdjustStock),
		},
		{
			MethodName: "ListStockMovements",
			Handler:    unaryHandler(ReorderService_ListStockMovements_FullMethodName, ReorderServiceServer.ListStockMovements),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sellergenix/inventory/v1/reorder.proto",
}

type ReorderServiceClient interface {
	PreviewReorderPlan(ctx context.Context, in *PreviewReorderPlanRequest, opts ...grpc.CallOption) (*PreviewReorderPlanResponse, error)
	GetReorderPlan(ctx context.Context, in *GetReorderPlanRequest, opts ...grpc.CallOption) (*GetReorderPlanResponse, error)
	ListReorderPlans(ctx context.Context, in *ListReorderPlansRequest, opts ...grpc.CallOption) (*ListReorderPlansResponse, error)
	UpdateReorderSettings(ctx context.Context, in *UpdateReorderSettingsRequest, opts ...grpc.CallOption) (*UpdateReorderSettingsResponse, error)
	AdjustStock(ctx context.Context, in *AdjustStockRequest, opts ...grpc.CallOption) (*AdjustStockResponse, error)
	ListStockMovements(ctx context.Context, in *ListStockMovementsRequest, opts ...grpc.CallOption) (*ListStockMovementsResponse, error)
}

type reorderServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewReorderServiceClient returns a client that always negotiates the JSON
// codec.
func NewReorderServiceClient(cc grpc.ClientConnInterface) ReorderServiceClient {
	return &reorderServiceClient{cc: cc}
}

func (c *reorderServiceClient) invoke(ctx context.Context, method string, in, out interface{}, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *reorderServiceClient) PreviewReorderPlan(ctx context.Context, in *PreviewReorderPlanRequest, opts ...grpc.CallOption) (*PreviewReorderPlanResponse, error) {
	out := new(PreviewReorderPlanResponse)
	if err := c.invoke(ctx, ReorderService_PreviewReorderPlan_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reorderServiceClient) GetReorderPlan(ctx context.Context, in *GetReorderPlanRequest, opts ...grpc.CallOption) (*GetReorderPlanResponse, error) {
	out := new(GetReorderPlanResponse)
	if err := c.invoke(ctx, ReorderService_GetReorderPlan_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reorderServiceClient) ListReorderPlans(ctx context.Context, in *ListReorderPlansRequest, opts ...grpc.CallOption) (*ListReorderPlansResponse, error) {
	out := new(ListReorderPlansResponse)
	if err := c.invoke(ctx, ReorderService_ListReorderPlans_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reorderServiceClient) UpdateReorderSettings(ctx context.Context, in *UpdateReorderSettingsRequest, opts ...grpc.CallOption) (*UpdateReorderSettingsResponse, error) {
	out := new(UpdateReorderSettingsResponse)
	if err := c.invoke(ctx, ReorderService_UpdateReorderSettings_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reorderServiceClient) AdjustStock(ctx context.Context, in *AdjustStockRequest, opts ...grpc.CallOption) (*AdjustStockResponse, error) {
	out := new(AdjustStockResponse)
	if err := c.invoke(ctx, ReorderService_AdjustStock_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *reorderServiceClient) ListStockMovements(ctx context.Context, in *ListStockMovementsRequest, opts ...grpc.CallOption) (*ListStockMovementsResponse, error) {
	out := new(ListStockMovementsResponse)
	if err := c.invoke(ctx, ReorderService_ListStockMovements_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
